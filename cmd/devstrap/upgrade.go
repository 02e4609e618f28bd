package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/messages"
)

func newUpgradeCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   messages.UpgradeUse,
		Short: messages.UpgradeShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return errors.New(messages.UpgradeNeedsArgsOrAll)
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			warnUpdates(cmd, a)

			ids := args
			if all {
				ids = a.loadedState().IDs()
				if len(ids) == 0 {
					return errors.New(messages.UpgradeNothingTracked)
				}
			}
			selections, err := selectionsFor(ids, "", "", nil)
			if err != nil {
				return err
			}
			inst := a.installer(cmd, a.Config.SilentDefault(), false)
			outcomes := inst.UpgradeAll(cmd.Context(), selections)
			return summarize(cmd, outcomes)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, messages.UpgradeFlagAll)
	return cmd
}
