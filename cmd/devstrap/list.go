package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/inspect"
	"github.com/beaconworks/devstrap/internal/messages"
)

var detectToolFunc = inspect.Detect

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			st := a.loadedState()

			_, _ = fmt.Fprintf(out, messages.ListHeaderFmt,
				messages.ListHeaderID, messages.ListHeaderName, messages.ListHeaderCat, messages.ListHeaderVer)
			for _, tool := range catalog.Builtin() {
				det := detectToolFunc(cmd.Context(), tool, st)
				installed := messages.ListNotInstalled
				if det.Installed() {
					if det.Version != "" {
						installed = color.GreenString(det.Version)
					} else {
						installed = color.GreenString(messages.ListVersionUnknown)
					}
				}
				_, _ = fmt.Fprintf(out, messages.ListHeaderFmt, tool.ID, tool.Name, tool.Category, installed)
			}
			return nil
		},
	}
}
