package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ProfileUse,
		Short: messages.ProfileShort,
	}
	cmd.AddCommand(newProfileAddCmd())
	return cmd
}

func newProfileAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ProfileAddUse,
		Short: messages.ProfileAddShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if _, err := catalog.Lookup(id); err != nil {
					return err
				}
			}

			cwd, err := getwdFunc()
			if err != nil {
				return err
			}
			path, ok, err := profile.Locate(cwd)
			if err != nil {
				return err
			}
			if !ok {
				// No profile anywhere above: start one here.
				path = filepath.Join(cwd, profile.FileName)
			}

			content := ""
			data, err := os.ReadFile(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf(messages.SystemReadFileErrFmt, path, err)
			}
			if err == nil {
				content = string(data)
			}

			patched, changed, err := profile.AddTools(content, args)
			if err != nil {
				return err
			}
			if !changed {
				cmd.Println(messages.ProfileAddNoop)
				return nil
			}
			if err := fsutil.WriteFileAtomic(path, []byte(patched), 0o644); err != nil {
				return err
			}
			cmd.Printf(messages.ProfileAddDoneFmt, path)
			return nil
		},
	}
}
