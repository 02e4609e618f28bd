// Package install runs the per-tool pipeline: detect what is already
// there, pick an install method, drive it, then verify and record the
// result.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/config"
	"github.com/beaconworks/devstrap/internal/download"
	"github.com/beaconworks/devstrap/internal/execx"
	"github.com/beaconworks/devstrap/internal/github"
	"github.com/beaconworks/devstrap/internal/inspect"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/paths"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
	"github.com/beaconworks/devstrap/internal/semver"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/winreg"
)

const (
	actionInstall   = "install"
	actionUninstall = "uninstall"
	actionUpgrade   = "upgrade"
)

// ErrNoManager reports a tool that no available package manager offers
// and that has no direct download either.
var ErrNoManager = errors.New(messages.InstallNoManager)

var (
	detectFunc               = inspect.Detect
	commandVersionFunc       = inspect.CommandVersion
	newManagerFunc           = pkgmgr.New
	latestReleaseFunc        = github.LatestRelease
	releaseByTagFunc         = github.ReleaseByTag
	githubMatchAsset         = github.MatchAsset
	runFunc                  = execx.Run
	runPowerShellFunc        = execx.RunPowerShell
	exitCodeFunc             = execx.ExitCode
	setManagedInstallFunc    = winreg.SetManagedInstall
	deleteManagedInstallFunc = winreg.DeleteManagedInstall
	runtimeGOARCH            = runtime.GOARCH
)

type githubRelease = github.Release

// Fetcher downloads an artifact into the cache and returns its local
// path.
type Fetcher interface {
	Fetch(ctx context.Context, url string, sha256hex string) (string, error)
}

// Params configures an Installer. Config, Paths, and Store are
// required; the rest have defaults.
type Params struct {
	Config  *config.Config
	Paths   paths.Paths
	Store   *state.Store
	Fetcher Fetcher
	Stdout  io.Writer
	Stderr  io.Writer
	Silent  bool
	Force   bool

	// ManagerOrder overrides the configured manager preference order
	// when non-empty. Profiles set it through managers.order.
	ManagerOrder []pkgmgr.Kind
}

// Installer drives install, uninstall, and upgrade for catalog tools.
type Installer struct {
	cfg     *config.Config
	paths   paths.Paths
	store   *state.Store
	fetcher Fetcher
	stdout  io.Writer
	stderr  io.Writer
	silent  bool
	force   bool
	order   []pkgmgr.Kind
}

// New returns an installer for the given parameters.
func New(params Params) *Installer {
	stdout := params.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := params.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	fetcher := params.Fetcher
	if fetcher == nil {
		fetcher = download.New(params.Paths.CacheDir, params.Config.Timeout(), params.Config.Network.Retries)
	}
	return &Installer{
		cfg:     params.Config,
		paths:   params.Paths,
		store:   params.Store,
		fetcher: fetcher,
		stdout:  stdout,
		stderr:  stderr,
		silent:  params.Silent,
		force:   params.Force,
		order:   params.ManagerOrder,
	}
}

// RequiresElevation reports whether any selection needs an elevated
// process.
func RequiresElevation(selections []profile.Selection) bool {
	for _, sel := range selections {
		if sel.Tool.RequiresElevation {
			return true
		}
	}
	return false
}

// Install runs the pipeline for one selected tool.
func (inst *Installer) Install(ctx context.Context, sel profile.Selection) report.Outcome {
	start := time.Now()
	outcome := inst.install(ctx, sel)
	return outcome.WithElapsed(time.Since(start))
}

// InstallAll installs each selection in order. A failed tool does not
// stop the rest; a done context does.
func (inst *Installer) InstallAll(ctx context.Context, selections []profile.Selection) []report.Outcome {
	outcomes := make([]report.Outcome, 0, len(selections))
	for _, sel := range selections {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, inst.Install(ctx, sel))
	}
	return outcomes
}

func (inst *Installer) install(ctx context.Context, sel profile.Selection) report.Outcome {
	tool := sel.Tool

	det := detectFunc(ctx, tool, inst.loadState())
	if det.Installed() && !inst.force && !wantsNewer(det.Version, sel.Version) {
		if det.Version != "" {
			return report.Skipped(tool.ID, actionInstall, fmt.Sprintf(messages.InstallAlreadyInstalledFmt, det.Version))
		}
		return report.Skipped(tool.ID, actionInstall, messages.InstallAlreadyInstalled)
	}

	if mgr, id, ok := inst.resolveManager(tool, inst.preferOrder(sel.Manager)); ok {
		return inst.installViaManager(ctx, tool, mgr, id, sel.Version)
	}
	if tool.Download != nil {
		return inst.installDirect(ctx, sel)
	}
	return report.Failed(tool.ID, actionInstall, fmt.Errorf(messages.InstallNoMethodFmt, tool.ID, ErrNoManager))
}

func (inst *Installer) installViaManager(ctx context.Context, tool catalog.Tool, mgr pkgmgr.Manager, id string, version string) report.Outcome {
	req := pkgmgr.Request{ID: id, Version: version, Force: inst.force}
	if err := mgr.Install(ctx, req); err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}

	installed := inst.verifyVersion(ctx, tool, mgr, req)
	if err := inst.applyEnv(tool); err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}
	if err := inst.recordInstall(tool, installed, mgr.Kind().String(), ""); err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}
	inst.mirrorManagedInstall(tool, installed)
	return report.OK(tool.ID, actionInstall, detailVia(installed, mgr.Kind().String()))
}

// verifyVersion asks the manager first, then the tool's own CLI. Both
// are best-effort; the pinned version is the last resort.
func (inst *Installer) verifyVersion(ctx context.Context, tool catalog.Tool, mgr pkgmgr.Manager, req pkgmgr.Request) string {
	if version, err := mgr.InstalledVersion(ctx, req); err == nil && version != "" {
		return version
	}
	if tool.CheckCommand != "" {
		if version, err := commandVersionFunc(ctx, tool); err == nil && version != "" {
			return version
		}
	}
	return req.Version
}

// resolveManager returns the first preferred manager that is usable on
// this machine and has an ID for the tool.
func (inst *Installer) resolveManager(tool catalog.Tool, prefer []pkgmgr.Kind) (pkgmgr.Manager, string, bool) {
	opts := pkgmgr.Options{Stdout: inst.stdout, Stderr: inst.stderr}
	for _, kind := range prefer {
		id := tool.ManagerID(kind.String())
		if id == "" {
			continue
		}
		mgr, err := newManagerFunc(kind, opts)
		if err != nil {
			continue
		}
		if !mgr.Detect() {
			continue
		}
		return mgr, id, true
	}
	return nil, "", false
}

func (inst *Installer) preferOrder(override string) []pkgmgr.Kind {
	if override != "" {
		if kind, err := pkgmgr.ParseKind(override); err == nil {
			return []pkgmgr.Kind{kind}
		}
	}
	if len(inst.order) > 0 {
		return inst.order
	}
	return inst.cfg.ManagerOrder()
}

func (inst *Installer) loadState() state.State {
	st, err := inst.store.Load()
	if err != nil {
		_, _ = fmt.Fprintf(inst.stderr, messages.InstallStateLoadWarnFmt+"\n", err)
		return state.State{}
	}
	return st
}

func (inst *Installer) recordInstall(tool catalog.Tool, version string, method string, path string) error {
	record := state.Record{
		Version:     version,
		Method:      method,
		Path:        path,
		InstalledAt: time.Now().UTC(),
	}
	if err := inst.store.Put(tool.ID, record); err != nil {
		return fmt.Errorf(messages.InstallRecordStateErrFmt, tool.ID, err)
	}
	return nil
}

func wantsNewer(installed, pinned string) bool {
	if pinned == "" || installed == "" {
		return false
	}
	return semver.IsOlder(installed, pinned)
}

func detailVia(version, method string) string {
	if version == "" {
		return fmt.Sprintf(messages.InstallDetailViaOnlyFmt, method)
	}
	return fmt.Sprintf(messages.InstallDetailViaFmt, version, method)
}

func archName() string {
	switch runtimeGOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return runtimeGOARCH
	}
}
