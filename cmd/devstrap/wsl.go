package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/wsl"
)

var (
	wslListFunc           = wsl.List
	wslInstallFunc        = wsl.Install
	wslUnregisterFunc     = wsl.Unregister
	wslEnableFeaturesFunc = wsl.EnableFeatures
)

func newWSLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.WSLUse,
		Short: messages.WSLShort,
	}
	cmd.AddCommand(newWSLListCmd())
	cmd.AddCommand(newWSLInstallCmd())
	cmd.AddCommand(newWSLRemoveCmd())
	return cmd
}

func newWSLListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.WSLListUse,
		Short: messages.WSLListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			distros, err := wslListFunc(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(distros) == 0 {
				_, _ = fmt.Fprintln(out, messages.WSLListNone)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.WSLListHeaderFmt,
				messages.WSLListHeaderName, messages.WSLListHeaderState, messages.WSLListHeaderVer)
			for _, d := range distros {
				name := d.Name
				if d.Default {
					name += messages.WSLListDefaultMark
				}
				_, _ = fmt.Fprintf(out, messages.WSLListHeaderFmt, name, d.State, strconv.Itoa(d.Version))
			}
			return nil
		},
	}
}

func newWSLInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.WSLInstallUse,
		Short: messages.WSLInstallShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			name := a.Config.WSL.DefaultDistro
			if len(args) == 1 {
				name = args[0]
			}

			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()
			if err := wslEnableFeaturesFunc(cmd.Context(), stdout, stderr); err != nil {
				if errors.Is(err, wsl.ErrRebootRequired) {
					_, _ = fmt.Fprintln(stdout, messages.WSLRebootRequired)
					return nil
				}
				return err
			}
			if err := wslInstallFunc(cmd.Context(), stdout, stderr, name); err != nil {
				if errors.Is(err, wsl.ErrRebootRequired) {
					_, _ = fmt.Fprintln(stdout, messages.WSLRebootRequired)
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintf(stdout, messages.WSLInstallDoneFmt, name)
			return nil
		},
	}
}

func newWSLRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.WSLRemoveUse,
		Short: messages.WSLRemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wslUnregisterFunc(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf(messages.WSLRemoveDoneFmt, args[0])
			return nil
		},
	}
}
