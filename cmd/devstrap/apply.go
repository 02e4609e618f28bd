package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
	"github.com/beaconworks/devstrap/internal/sync"
	"github.com/beaconworks/devstrap/internal/wsl"
)

var getwdFunc = os.Getwd

const actionWSL = "wsl"

func newApplyCmd() *cobra.Command {
	var upgrade bool
	cmd := &cobra.Command{
		Use:   messages.ApplyUse,
		Short: messages.ApplyShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, selections, err := loadProfileSelections(args)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			warnUpdates(cmd, a)
			cmd.Printf(messages.ApplyProfileFmt, p.Source)

			inst := a.profileInstaller(cmd, a.Config.SilentDefault(), false, p.Managers.Kinds())
			outcomes := sync.Apply(cmd.Context(), inst, selections, sync.Options{Upgrade: upgrade})
			outcomes = append(outcomes, ensureDistros(cmd, p.WSL)...)
			return summarize(cmd, outcomes)
		},
	}
	cmd.Flags().BoolVar(&upgrade, "upgrade", false, messages.ApplyFlagUpgrade)
	return cmd
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DiffUse,
		Short: messages.DiffShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, selections, err := loadProfileSelections(args)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			inst := a.profileInstaller(cmd, a.Config.SilentDefault(), false, p.Managers.Kinds())
			diff := sync.Diff(cmd.Context(), inst, selections, p.Source)
			if diff == "" {
				cmd.Println(messages.DiffNoChanges)
				return nil
			}
			cmd.Println(diff)
			return nil
		},
	}
}

// loadProfileSelections resolves the profile path (explicit argument, or
// the nearest devstrap.yaml walking up from the working directory),
// validates it, and expands it into selections.
func loadProfileSelections(args []string) (profile.Profile, []profile.Selection, error) {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		cwd, err := getwdFunc()
		if err != nil {
			return profile.Profile{}, nil, err
		}
		found, ok, err := profile.Locate(cwd)
		if err != nil {
			return profile.Profile{}, nil, err
		}
		if !ok {
			return profile.Profile{}, nil, fmt.Errorf(messages.ApplyNoProfileFmt, profile.FileName)
		}
		path = found
	}

	p, err := profile.Load(path)
	if err != nil {
		return profile.Profile{}, nil, err
	}
	if findings := profile.Validate(p); profile.HasErrors(findings) {
		return profile.Profile{}, nil, findingsError(path, findings)
	}
	selections, err := p.Selections()
	if err != nil {
		return profile.Profile{}, nil, err
	}
	return p, selections, nil
}

// ensureDistros registers the profile's WSL distros that are missing,
// reporting each like a tool. Registered ones come back as skips.
func ensureDistros(cmd *cobra.Command, names []string) []report.Outcome {
	if len(names) == 0 {
		return nil
	}
	ctx := cmd.Context()
	outcomes := make([]report.Outcome, 0, len(names))

	distros, err := wslListFunc(ctx)
	if err != nil {
		for _, name := range names {
			outcomes = append(outcomes, report.Failed(name, actionWSL, err))
		}
		return outcomes
	}
	registered := make(map[string]bool, len(distros))
	for _, d := range distros {
		registered[strings.ToLower(d.Name)] = true
	}

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		name = strings.TrimSpace(name)
		if registered[strings.ToLower(name)] {
			outcomes = append(outcomes, report.Skipped(name, actionWSL, messages.ApplyWSLAlreadyRegistered))
			continue
		}
		err := wslInstallFunc(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), name)
		switch {
		case errors.Is(err, wsl.ErrRebootRequired):
			outcomes = append(outcomes, report.OK(name, actionWSL, messages.WSLRebootRequired))
		case err != nil:
			outcomes = append(outcomes, report.Failed(name, actionWSL, err))
		default:
			outcomes = append(outcomes, report.OK(name, actionWSL, messages.ApplyWSLRegistered))
		}
	}
	return outcomes
}

func findingsError(path string, findings []catalog.Finding) error {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf(messages.ApplyFindingLineFmt, f.Severity, f.Code, f.ToolID, f.Message))
	}
	return fmt.Errorf(messages.ApplyInvalidProfileFmt, path, strings.Join(lines, "\n"))
}
