package install

import (
	"context"
	"fmt"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/state"
)

// Step is one planned action, produced for dry runs and drift previews.
type Step struct {
	ToolID  string
	Name    string
	Action  string
	Method  string
	Version string
	Reason  string

	// Installed and InstalledVersion report what detection found, so
	// reconciliation can tell "already present" apart from "no method".
	Installed        bool
	InstalledVersion string
}

// Plan step actions.
const (
	StepInstall = "install"
	StepSkip    = "skip"
)

// Plan resolves what InstallAll would do without touching the machine.
func (inst *Installer) Plan(ctx context.Context, selections []profile.Selection) []Step {
	st := inst.loadState()
	steps := make([]Step, 0, len(selections))
	for _, sel := range selections {
		steps = append(steps, inst.planOne(ctx, sel, st))
	}
	return steps
}

func (inst *Installer) planOne(ctx context.Context, sel profile.Selection, st state.State) Step {
	tool := sel.Tool
	step := Step{ToolID: tool.ID, Name: tool.Name, Version: sel.Version}

	det := detectFunc(ctx, tool, st)
	if det.Installed() {
		step.Installed = true
		step.InstalledVersion = det.Version
	}
	if det.Installed() && !inst.force && !wantsNewer(det.Version, sel.Version) {
		step.Action = StepSkip
		if det.Version != "" {
			step.Reason = fmt.Sprintf(messages.InstallAlreadyInstalledFmt, det.Version)
		} else {
			step.Reason = messages.InstallAlreadyInstalled
		}
		return step
	}

	if mgr, _, ok := inst.resolveManager(tool, inst.preferOrder(sel.Manager)); ok {
		step.Action = StepInstall
		step.Method = mgr.Kind().String()
		return step
	}
	if tool.Download != nil {
		step.Action = StepInstall
		step.Method = state.MethodDownload
		return step
	}

	step.Action = StepSkip
	step.Reason = messages.InstallNoManager
	return step
}
