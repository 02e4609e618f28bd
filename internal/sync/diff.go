package sync

import (
	"context"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/beaconworks/devstrap/internal/profile"
)

// Diff renders the drift between the machine and the profile as a
// unified diff. source labels the profile side (its file path). An empty
// string means the machine already matches.
func Diff(ctx context.Context, runner Runner, selections []profile.Selection, source string) string {
	steps := runner.Plan(ctx, selections)

	current := make([]string, 0, len(steps))
	desired := make([]string, 0, len(steps))
	for _, step := range steps {
		have, want := describeStep(step)
		current = append(current, have)
		desired = append(desired, want)
	}

	return strings.TrimSpace(udiff.Unified(
		"machine",
		source,
		joinLines(current),
		joinLines(desired),
	))
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
