package main

import (
	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/messages"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			selections, err := selectionsFor(args, "", "", nil)
			if err != nil {
				return err
			}
			inst := a.installer(cmd, a.Config.SilentDefault(), false)
			outcomes := inst.UninstallAll(cmd.Context(), selections)
			return summarize(cmd, outcomes)
		},
	}
}
