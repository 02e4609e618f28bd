// Package profile loads declarative machine profiles (devstrap.yaml)
// that select catalog tools, pin versions, and define custom tools.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
)

// FileName is the profile file discovered by upward search.
const FileName = "devstrap.yaml"

// Entry selects one tool from the catalog. In YAML it is either a bare
// tool ID or a mapping with optional version, manager, and skip fields.
type Entry struct {
	ID      string
	Version string
	Manager string
	Skip    bool
}

// UnmarshalYAML accepts both the scalar and the mapping entry forms.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.ID = value.Value
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := strings.TrimSpace(value.Content[i].Value)
			valueNode := value.Content[i+1]
			switch key {
			case "id":
				e.ID = valueNode.Value
			case "version":
				e.Version = valueNode.Value
			case "manager":
				e.Manager = valueNode.Value
			case "skip":
				if err := valueNode.Decode(&e.Skip); err != nil {
					return fmt.Errorf(messages.ProfileEntryFieldBoolFmt, key, err)
				}
			default:
				return fmt.Errorf(messages.ProfileEntryFieldUnknownFmt, key)
			}
		}
		if strings.TrimSpace(e.ID) == "" {
			return errors.New(messages.ProfileEntryMissingID)
		}
		return nil
	}
	return errors.New(messages.ProfileEntryBadNode)
}

// CustomTool is a profile-defined tool that overlays the builtin catalog.
type CustomTool struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name,omitempty"`
	Category      string   `yaml:"category,omitempty"`
	CheckCommand  string   `yaml:"check_command,omitempty"`
	VersionArgs   []string `yaml:"version_args,omitempty"`
	WingetID      string   `yaml:"winget,omitempty"`
	ChocoID       string   `yaml:"choco,omitempty"`
	ScoopID       string   `yaml:"scoop,omitempty"`
	RegistryNames []string `yaml:"registry_names,omitempty"`
}

// Tool converts a custom definition into a catalog entry.
func (c CustomTool) Tool() catalog.Tool {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	category := c.Category
	if category == "" {
		category = catalog.CategoryUtilities
	}
	return catalog.Tool{
		ID:            normalizeID(c.ID),
		Name:          name,
		Category:      category,
		CheckCommand:  c.CheckCommand,
		VersionArgs:   c.VersionArgs,
		WingetID:      c.WingetID,
		ChocoID:       c.ChocoID,
		ScoopID:       c.ScoopID,
		RegistryNames: c.RegistryNames,
	}
}

// ManagersSpec overrides the configured package manager preference order.
type ManagersSpec struct {
	Order []string `yaml:"order,omitempty"`
}

// Kinds returns the override as manager kinds, empty when the profile
// sets none. Validation guarantees the names parse, so unknown entries
// are skipped.
func (m ManagersSpec) Kinds() []pkgmgr.Kind {
	order := make([]pkgmgr.Kind, 0, len(m.Order))
	for _, name := range m.Order {
		kind, err := pkgmgr.ParseKind(strings.TrimSpace(name))
		if err != nil {
			continue
		}
		order = append(order, kind)
	}
	return order
}

// Profile is one parsed devstrap.yaml document.
type Profile struct {
	Name     string       `yaml:"name,omitempty"`
	Tools    []Entry      `yaml:"tools"`
	Custom   []CustomTool `yaml:"custom,omitempty"`
	Managers ManagersSpec `yaml:"managers,omitempty"`
	WSL      []string     `yaml:"wsl,omitempty"`

	// Source is the path the profile was loaded from, for diagnostics.
	Source string `yaml:"-"`
}

// Selection is one resolved tool to act on, with its pin and override.
type Selection struct {
	Tool    catalog.Tool
	Version string
	Manager string
}

// Parse decodes a profile document. Unknown fields are rejected.
func Parse(data []byte, source string) (Profile, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var out Profile
	if err := decoder.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, fmt.Errorf(messages.ProfileEmptyFmt, source)
		}
		return Profile{}, fmt.Errorf(messages.ProfileParseErrFmt, source, err)
	}
	out.Source = source
	return out, nil
}

// Load reads and parses a profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf(messages.ProfileReadErrFmt, path, err)
	}
	return Parse(data, path)
}

// Selections resolves non-skipped entries against custom then builtin
// tools, in profile order.
func (p Profile) Selections() ([]Selection, error) {
	out := make([]Selection, 0, len(p.Tools))
	for _, entry := range p.Tools {
		if entry.Skip {
			continue
		}
		tool, err := p.lookupTool(entry.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Selection{
			Tool:    tool,
			Version: strings.TrimSpace(entry.Version),
			Manager: strings.ToLower(strings.TrimSpace(entry.Manager)),
		})
	}
	return out, nil
}

func (p Profile) lookupTool(id string) (catalog.Tool, error) {
	normalized := normalizeID(id)
	for _, custom := range p.Custom {
		if normalizeID(custom.ID) == normalized {
			return custom.Tool(), nil
		}
	}
	return catalog.Lookup(normalized)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(id)))
}
