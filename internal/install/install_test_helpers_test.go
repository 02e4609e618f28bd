package install

import (
	"context"
	"io"
	"testing"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/config"
	"github.com/beaconworks/devstrap/internal/inspect"
	"github.com/beaconworks/devstrap/internal/paths"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/state"
)

// fakeManager records requests instead of shelling out.
type fakeManager struct {
	kind         pkgmgr.Kind
	usable       bool
	installedVer string

	installErr   error
	uninstallErr error
	upgradeErr   error

	installs   []pkgmgr.Request
	uninstalls []pkgmgr.Request
	upgrades   []pkgmgr.Request
}

func (m *fakeManager) Kind() pkgmgr.Kind { return m.kind }
func (m *fakeManager) Detect() bool      { return m.usable }

func (m *fakeManager) Install(_ context.Context, req pkgmgr.Request) error {
	m.installs = append(m.installs, req)
	return m.installErr
}

func (m *fakeManager) Uninstall(_ context.Context, req pkgmgr.Request) error {
	m.uninstalls = append(m.uninstalls, req)
	return m.uninstallErr
}

func (m *fakeManager) Upgrade(_ context.Context, req pkgmgr.Request) error {
	m.upgrades = append(m.upgrades, req)
	return m.upgradeErr
}

func (m *fakeManager) InstalledVersion(context.Context, pkgmgr.Request) (string, error) {
	return m.installedVer, nil
}

// fakeFetcher hands back a pre-made local file.
type fakeFetcher struct {
	path string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ string) (string, error) {
	f.urls = append(f.urls, url)
	return f.path, f.err
}

func newTestInstaller(t *testing.T, mutate func(*Params)) (*Installer, paths.Paths) {
	t.Helper()
	p := paths.ForHome(t.TempDir())
	params := Params{
		Config: config.Default(),
		Paths:  p,
		Store:  state.NewStore(p.StatePath),
		Stdout: io.Discard,
		Stderr: io.Discard,
		Silent: true,
	}
	if mutate != nil {
		mutate(&params)
	}
	return New(params), p
}

func stubDetect(t *testing.T, det inspect.Detection) {
	t.Helper()
	prev := detectFunc
	detectFunc = func(context.Context, catalog.Tool, state.State) inspect.Detection {
		return det
	}
	t.Cleanup(func() { detectFunc = prev })
}

func stubManager(t *testing.T, mgr *fakeManager) {
	t.Helper()
	prev := newManagerFunc
	newManagerFunc = func(kind pkgmgr.Kind, _ pkgmgr.Options) (pkgmgr.Manager, error) {
		mgr.kind = kind
		return mgr, nil
	}
	t.Cleanup(func() { newManagerFunc = prev })
}

// mirrorEntry captures a managed-installs registry mirror write.
type mirrorEntry struct {
	id      string
	name    string
	version string
}

func stubManagedMirror(t *testing.T) *[]mirrorEntry {
	t.Helper()
	prev := setManagedInstallFunc
	entries := &[]mirrorEntry{}
	setManagedInstallFunc = func(id string, name string, version string) error {
		*entries = append(*entries, mirrorEntry{id: id, name: name, version: version})
		return nil
	}
	t.Cleanup(func() { setManagedInstallFunc = prev })
	return entries
}

func notInstalled() inspect.Detection {
	return inspect.Detection{Status: inspect.StatusNotInstalled}
}

func installedAs(version string) inspect.Detection {
	return inspect.Detection{Status: inspect.StatusInstalled, Version: version, Source: inspect.SourceCommand}
}
