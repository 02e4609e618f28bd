package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/terminal"
)

var isInteractiveFunc = terminal.IsInteractive

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the menu when a terminal is attached.
			if !isInteractiveFunc() {
				return errors.New(messages.WizardRequiresTerminal)
			}
			return runMenu(cmd)
		},
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newUpgradeCmd())
	cmd.AddCommand(newMenuCmd())
	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newBootstrapCmd())
	cmd.AddCommand(newWSLCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newEnvCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(versionString())
			return nil
		},
	}
}
