// Package sync reconciles the machine against a declarative profile:
// apply installs what the profile selects and is missing (optionally
// upgrading what is outdated), diff previews the drift without touching
// anything.
package sync

import (
	"context"
	"fmt"

	"github.com/beaconworks/devstrap/internal/install"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
)

// Runner is the slice of the install pipeline reconciliation needs.
// *install.Installer satisfies it.
type Runner interface {
	Plan(ctx context.Context, selections []profile.Selection) []install.Step
	Install(ctx context.Context, sel profile.Selection) report.Outcome
	Upgrade(ctx context.Context, sel profile.Selection) report.Outcome
}

// Options control how Apply treats tools that are already present.
type Options struct {
	// Upgrade runs the upgrade pipeline for installed tools instead of
	// skipping them. Up-to-date tools still come back as skips.
	Upgrade bool
}

// Apply reconciles each selection in profile order. A failed tool does
// not stop the rest; a done context does.
func Apply(ctx context.Context, runner Runner, selections []profile.Selection, opts Options) []report.Outcome {
	steps := runner.Plan(ctx, selections)
	outcomes := make([]report.Outcome, 0, len(selections))
	for i, step := range steps {
		if ctx.Err() != nil {
			break
		}
		sel := selections[i]
		switch {
		case step.Action == install.StepInstall:
			outcomes = append(outcomes, runner.Install(ctx, sel))
		case step.Installed && opts.Upgrade:
			outcomes = append(outcomes, runner.Upgrade(ctx, sel))
		default:
			outcomes = append(outcomes, report.Skipped(step.ToolID, actionApply, step.Reason))
		}
	}
	return outcomes
}

const actionApply = "apply"

// describeStep renders one tool line for the drift preview.
func describeStep(step install.Step) (current string, desired string) {
	switch {
	case step.Installed && step.InstalledVersion != "":
		current = fmt.Sprintf("%s %s", step.ToolID, step.InstalledVersion)
	case step.Installed:
		current = fmt.Sprintf("%s (version unknown)", step.ToolID)
	default:
		current = fmt.Sprintf("%s (not installed)", step.ToolID)
	}

	switch {
	case step.Action == install.StepSkip:
		// Either already satisfied or uninstallable: apply would not
		// change it, so the diff stays quiet.
		desired = current
	case step.Version != "":
		desired = fmt.Sprintf("%s %s", step.ToolID, step.Version)
	default:
		desired = fmt.Sprintf("%s (latest via %s)", step.ToolID, step.Method)
	}
	return current, desired
}
