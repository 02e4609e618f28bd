package main

import (
	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/config"
	"github.com/beaconworks/devstrap/internal/install"
	"github.com/beaconworks/devstrap/internal/paths"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/updatewarn"
)

var (
	resolvePathsFunc = paths.Resolve
	loadConfigFunc   = config.LoadOrDefault
	warnIfOutdated   = updatewarn.WarnIfOutdated
)

// app is the shared wiring every command starts from: resolved paths,
// loaded config, and the state store.
type app struct {
	Paths  paths.Paths
	Config *config.Config
	Store  *state.Store
}

func loadApp() (*app, error) {
	p, err := resolvePathsFunc()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfigFunc(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	return &app{Paths: p, Config: cfg, Store: state.NewStore(p.StatePath)}, nil
}

// installer builds an Installer streaming manager output to the command's
// writers.
func (a *app) installer(cmd *cobra.Command, silent bool, force bool) *install.Installer {
	return a.profileInstaller(cmd, silent, force, nil)
}

// profileInstaller is installer with a profile's manager-order override
// applied. A nil order keeps the configured preference.
func (a *app) profileInstaller(cmd *cobra.Command, silent bool, force bool, order []pkgmgr.Kind) *install.Installer {
	return install.New(install.Params{
		Config:       a.Config,
		Paths:        a.Paths,
		Store:        a.Store,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
		Silent:       silent,
		Force:        force,
		ManagerOrder: order,
	})
}

// loadedState reads the state file, treating a missing or unreadable file
// as empty so read-only commands keep working.
func (a *app) loadedState() state.State {
	st, err := a.Store.Load()
	if err != nil {
		return state.State{}
	}
	return st
}

// warnUpdates prints a throttled notice on stderr when a newer release
// exists. Commands that only read local files skip it.
func warnUpdates(cmd *cobra.Command, a *app) {
	warnIfOutdated(cmd.Context(), Version, a.Paths.Home, cmd.ErrOrStderr())
}
