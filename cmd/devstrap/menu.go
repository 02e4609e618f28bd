package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/elevate"
	"github.com/beaconworks/devstrap/internal/install"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/wizard"
)

var menuRunFunc = func(installed state.State) ([]profile.Selection, error) {
	return wizard.Run(wizard.NewHuhUI(), installed)
}

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.MenuUse,
		Short: messages.MenuShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractiveFunc() {
				return errors.New(messages.WizardRequiresTerminal)
			}
			return runMenu(cmd)
		},
	}
}

// runMenu collects selections interactively and pushes them through the
// standard install pipeline. The bare root invocation lands here too.
func runMenu(cmd *cobra.Command) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	warnUpdates(cmd, a)

	selections, err := menuRunFunc(a.loadedState())
	if err != nil {
		return err
	}
	if len(selections) == 0 {
		cmd.Println(messages.MenuNoChanges)
		return nil
	}
	if install.RequiresElevation(selections) {
		err := maybeRelaunchFunc(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), menuRelaunchArgs(selections))
		if errors.Is(err, elevate.ErrRelaunched) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	inst := a.installer(cmd, a.Config.SilentDefault(), false)
	outcomes := inst.InstallAll(cmd.Context(), selections)
	return summarize(cmd, outcomes)
}

// menuRelaunchArgs converts a menu selection into a non-interactive
// install invocation so the elevated child does not re-prompt.
func menuRelaunchArgs(selections []profile.Selection) []string {
	args := []string{"install"}
	for _, sel := range selections {
		args = append(args, sel.Tool.ID)
	}
	if len(selections) > 0 && selections[0].Manager != "" {
		args = append(args, "--manager", selections[0].Manager)
	}
	return args
}
