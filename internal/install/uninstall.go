package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
	"github.com/beaconworks/devstrap/internal/shims"
	"github.com/beaconworks/devstrap/internal/state"
)

// Uninstall removes one tool devstrap manages.
func (inst *Installer) Uninstall(ctx context.Context, sel profile.Selection) report.Outcome {
	start := time.Now()
	outcome := inst.uninstall(ctx, sel)
	return outcome.WithElapsed(time.Since(start))
}

// UninstallAll removes each selection in order. A failed tool does not
// stop the rest; a done context does.
func (inst *Installer) UninstallAll(ctx context.Context, selections []profile.Selection) []report.Outcome {
	outcomes := make([]report.Outcome, 0, len(selections))
	for _, sel := range selections {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, inst.Uninstall(ctx, sel))
	}
	return outcomes
}

func (inst *Installer) uninstall(ctx context.Context, sel profile.Selection) report.Outcome {
	tool := sel.Tool

	st := inst.loadState()
	record, managed := st.Get(tool.ID)
	if !managed {
		det := detectFunc(ctx, tool, st)
		if !det.Installed() {
			return report.Skipped(tool.ID, actionUninstall, messages.InstallNotInstalled)
		}
		return report.Failed(tool.ID, actionUninstall, fmt.Errorf(messages.InstallNotManagedFmt, tool.ID))
	}

	switch record.Method {
	case state.MethodWinget, state.MethodChoco, state.MethodScoop:
		if err := inst.uninstallViaManager(ctx, tool, record.Method); err != nil {
			return report.Failed(tool.ID, actionUninstall, err)
		}
	case state.MethodDownload:
		if err := inst.removeArtifacts(tool, record); err != nil {
			return report.Failed(tool.ID, actionUninstall, err)
		}
	default:
		return report.Failed(tool.ID, actionUninstall,
			fmt.Errorf(messages.InstallUnknownMethodFmt, record.Method, tool.ID))
	}

	if err := inst.removeEnv(tool); err != nil {
		return report.Failed(tool.ID, actionUninstall, err)
	}
	if err := inst.store.Delete(tool.ID); err != nil {
		return report.Failed(tool.ID, actionUninstall,
			fmt.Errorf(messages.InstallRecordStateErrFmt, tool.ID, err))
	}
	_ = deleteManagedInstallFunc(tool.ID)

	return report.OK(tool.ID, actionUninstall, fmt.Sprintf(messages.InstallDetailViaOnlyFmt, record.Method))
}

func (inst *Installer) uninstallViaManager(ctx context.Context, tool catalog.Tool, method string) error {
	kind, err := pkgmgr.ParseKind(method)
	if err != nil {
		return err
	}
	mgr, err := newManagerFunc(kind, pkgmgr.Options{Stdout: inst.stdout, Stderr: inst.stderr})
	if err != nil {
		return err
	}
	id := tool.ManagerID(method)
	if id == "" {
		return fmt.Errorf(messages.InstallUnknownMethodFmt, method, tool.ID)
	}
	return mgr.Uninstall(ctx, pkgmgr.Request{ID: id})
}

// removeArtifacts deletes what a direct install placed: the per-tool
// directory under tools/ and any shims pointing into it.
func (inst *Installer) removeArtifacts(tool catalog.Tool, record state.Record) error {
	toolDir := filepath.Join(inst.paths.ToolsDir, tool.ID)
	if err := os.RemoveAll(toolDir); err != nil {
		return fmt.Errorf(messages.InstallRemoveErrFmt, tool.ID, err)
	}
	if err := shims.Remove(shims.RealSystem{}, inst.paths.BinDir, tool.ID); err != nil {
		return fmt.Errorf(messages.InstallRemoveErrFmt, tool.ID, err)
	}
	if record.Path != "" && !strings.HasPrefix(record.Path, toolDir+string(filepath.Separator)) {
		if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf(messages.InstallRemoveErrFmt, tool.ID, err)
		}
	}
	return nil
}
