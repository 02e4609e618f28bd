package install

import (
	"context"
	"fmt"
	"time"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
	"github.com/beaconworks/devstrap/internal/semver"
	"github.com/beaconworks/devstrap/internal/state"
)

// Upgrade moves one managed tool to its latest (or pinned) version.
func (inst *Installer) Upgrade(ctx context.Context, sel profile.Selection) report.Outcome {
	start := time.Now()
	outcome := inst.upgrade(ctx, sel)
	return outcome.WithElapsed(time.Since(start))
}

// UpgradeAll upgrades each selection in order. A failed tool does not
// stop the rest; a done context does.
func (inst *Installer) UpgradeAll(ctx context.Context, selections []profile.Selection) []report.Outcome {
	outcomes := make([]report.Outcome, 0, len(selections))
	for _, sel := range selections {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, inst.Upgrade(ctx, sel))
	}
	return outcomes
}

func (inst *Installer) upgrade(ctx context.Context, sel profile.Selection) report.Outcome {
	tool := sel.Tool

	st := inst.loadState()
	record, managed := st.Get(tool.ID)
	if !managed {
		det := detectFunc(ctx, tool, st)
		if !det.Installed() {
			return report.Skipped(tool.ID, actionUpgrade, messages.InstallNotInstalled)
		}
		return report.Failed(tool.ID, actionUpgrade, fmt.Errorf(messages.InstallNotManagedFmt, tool.ID))
	}

	switch record.Method {
	case state.MethodWinget, state.MethodChoco, state.MethodScoop:
		return inst.upgradeViaManager(ctx, tool, record)
	case state.MethodDownload:
		return inst.upgradeDirect(ctx, sel, record)
	default:
		return report.Failed(tool.ID, actionUpgrade,
			fmt.Errorf(messages.InstallUnknownMethodFmt, record.Method, tool.ID))
	}
}

func (inst *Installer) upgradeViaManager(ctx context.Context, tool catalog.Tool, record state.Record) report.Outcome {
	kind, err := pkgmgr.ParseKind(record.Method)
	if err != nil {
		return report.Failed(tool.ID, actionUpgrade, err)
	}
	mgr, err := newManagerFunc(kind, pkgmgr.Options{Stdout: inst.stdout, Stderr: inst.stderr})
	if err != nil {
		return report.Failed(tool.ID, actionUpgrade, err)
	}
	id := tool.ManagerID(record.Method)
	if id == "" {
		return report.Failed(tool.ID, actionUpgrade,
			fmt.Errorf(messages.InstallUnknownMethodFmt, record.Method, tool.ID))
	}

	req := pkgmgr.Request{ID: id}
	if err := mgr.Upgrade(ctx, req); err != nil {
		return report.Failed(tool.ID, actionUpgrade, err)
	}

	installed := inst.verifyVersion(ctx, tool, mgr, req)
	if installed != "" && installed == record.Version {
		return report.Skipped(tool.ID, actionUpgrade, fmt.Sprintf(messages.InstallUpToDateFmt, installed))
	}
	if err := inst.recordInstall(tool, installed, record.Method, record.Path); err != nil {
		return report.Failed(tool.ID, actionUpgrade, err)
	}
	inst.mirrorManagedInstall(tool, installed)
	return report.OK(tool.ID, actionUpgrade, detailVia(installed, record.Method))
}

// upgradeDirect re-resolves the download source and reinstalls when it
// carries something newer than the recorded version.
func (inst *Installer) upgradeDirect(ctx context.Context, sel profile.Selection, record state.Record) report.Outcome {
	tool := sel.Tool
	if tool.Download == nil {
		return report.Failed(tool.ID, actionUpgrade,
			fmt.Errorf(messages.InstallUnknownMethodFmt, record.Method, tool.ID))
	}

	resolved, err := inst.resolveArtifact(ctx, tool, sel.Version)
	if err != nil {
		return report.Failed(tool.ID, actionUpgrade, err)
	}
	if resolved.version != "" && record.Version != "" && !semver.IsOlder(record.Version, resolved.version) {
		return report.Skipped(tool.ID, actionUpgrade, fmt.Sprintf(messages.InstallUpToDateFmt, record.Version))
	}

	outcome := inst.installDirect(ctx, sel)
	outcome.Action = actionUpgrade
	return outcome
}
