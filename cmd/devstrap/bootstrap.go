package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
)

var bootstrapFunc = pkgmgr.Bootstrap

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.BootstrapUse,
		Short: messages.BootstrapShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pkgmgr.Options{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}

			if len(args) == 1 {
				kind, err := pkgmgr.ParseKind(args[0])
				if err != nil {
					return err
				}
				return bootstrapOne(cmd, kind, opts)
			}

			// No manager named: install every registered one that is
			// missing, in declaration order.
			missing := false
			for _, kind := range pkgmgr.Kinds() {
				mgr, err := pkgmgr.New(kind, opts)
				if err != nil {
					return err
				}
				if mgr.Detect() {
					cmd.Printf(messages.BootstrapSkipFmt, kind)
					continue
				}
				missing = true
				if err := bootstrapOne(cmd, kind, opts); err != nil {
					return err
				}
			}
			if !missing {
				cmd.Println(messages.BootstrapAllPresent)
			}
			return nil
		},
	}
}

func bootstrapOne(cmd *cobra.Command, kind pkgmgr.Kind, opts pkgmgr.Options) error {
	if err := bootstrapFunc(cmd.Context(), kind, opts); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.BootstrapDoneFmt, kind)
	return nil
}
