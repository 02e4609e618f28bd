package wizard

// Choices tracks menu selections across steps.
type Choices struct {
	// Selected maps tool ID to whether the user picked it.
	Selected map[string]bool
	// Manager is the package manager override, empty for the configured
	// order.
	Manager string
}

// NewChoices returns an empty selection set.
func NewChoices() *Choices {
	return &Choices{Selected: make(map[string]bool)}
}

// Clone returns a deep copy used to restore state on back navigation.
func (c *Choices) Clone() *Choices {
	if c == nil {
		return nil
	}
	out := &Choices{
		Selected: make(map[string]bool, len(c.Selected)),
		Manager:  c.Manager,
	}
	for id, on := range c.Selected {
		out.Selected[id] = on
	}
	return out
}

// Count returns the number of selected tools.
func (c *Choices) Count() int {
	n := 0
	for _, on := range c.Selected {
		if on {
			n++
		}
	}
	return n
}
