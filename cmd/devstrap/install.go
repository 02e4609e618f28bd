package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/elevate"
	"github.com/beaconworks/devstrap/internal/install"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
)

var maybeRelaunchFunc = elevate.MaybeRelaunch

func newInstallCmd() *cobra.Command {
	var (
		version string
		force   bool
		silent  bool
		manager string
		dryRun  bool
		skip    []string
	)
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if version != "" && len(args) > 1 {
				return fmt.Errorf(messages.InstallVersionNeedsOneTool, len(args))
			}
			if manager != "" {
				if _, err := pkgmgr.ParseKind(manager); err != nil {
					return err
				}
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			warnUpdates(cmd, a)

			selections, err := selectionsFor(args, version, manager, skip)
			if err != nil {
				return err
			}
			if len(selections) == 0 {
				cmd.Println(messages.InstallNothingToDo)
				return nil
			}

			useSilent := a.Config.SilentDefault()
			if cmd.Flags().Changed("silent") {
				useSilent = silent
			}
			inst := a.installer(cmd, useSilent, force)

			if dryRun {
				printPlan(cmd, inst.Plan(cmd.Context(), selections))
				return nil
			}
			if install.RequiresElevation(selections) {
				err := maybeRelaunchFunc(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), os.Args[1:])
				if errors.Is(err, elevate.ErrRelaunched) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			outcomes := inst.InstallAll(cmd.Context(), selections)
			return summarize(cmd, outcomes)
		},
	}
	cmd.Flags().StringVar(&version, "version", "", messages.InstallFlagVersion)
	cmd.Flags().BoolVar(&force, "force", false, messages.InstallFlagForce)
	cmd.Flags().BoolVar(&silent, "silent", false, messages.InstallFlagSilent)
	cmd.Flags().StringVar(&manager, "manager", "", messages.InstallFlagManager)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.InstallFlagDryRun)
	cmd.Flags().StringArrayVar(&skip, "skip", nil, messages.InstallFlagSkip)
	return cmd
}

// selectionsFor resolves tool ids against the catalog, dropping skipped
// ones while keeping the argument order.
func selectionsFor(ids []string, version string, manager string, skip []string) ([]profile.Selection, error) {
	skipped := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}
	var selections []profile.Selection
	for _, id := range ids {
		if skipped[id] {
			continue
		}
		tool, err := catalog.Lookup(id)
		if err != nil {
			return nil, err
		}
		selections = append(selections, profile.Selection{Tool: tool, Version: version, Manager: manager})
	}
	return selections, nil
}

func printPlan(cmd *cobra.Command, steps []install.Step) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, messages.InstallDryRunHeader)
	for _, step := range steps {
		detail := step.Reason
		if step.Action == install.StepInstall {
			if step.Version != "" {
				detail = fmt.Sprintf(messages.InstallDetailViaFmt, step.Version, step.Method)
			} else {
				detail = fmt.Sprintf(messages.InstallDetailViaOnlyFmt, step.Method)
			}
		}
		_, _ = fmt.Fprintf(out, messages.InstallDryRunLineFmt, step.ToolID, step.Action, detail)
	}
}

// summarize prints the run summary and converts failures into exit 1.
// A cancelled run is reported before the summary and also exits 1.
func summarize(cmd *cobra.Command, outcomes []report.Outcome) error {
	aborted := cmd.Context().Err() != nil
	if aborted {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.RunAbortedFmt, cmd.Context().Err())
	}
	report.Print(cmd.OutOrStdout(), outcomes)
	if aborted || report.FailedCount(outcomes) > 0 {
		return &SilentExitError{Code: 1}
	}
	return nil
}
