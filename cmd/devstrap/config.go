package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/config"
	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigShowUse,
		Short: messages.ConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			cfg := a.Config
			order := make([]string, 0, len(cfg.ManagerOrder()))
			for _, kind := range cfg.ManagerOrder() {
				order = append(order, kind.String())
			}
			cmd.Printf(messages.ConfigShowFmt,
				strings.Join(order, ", "),
				cfg.Timeout(),
				cfg.Network.Retries,
				cfg.SilentDefault(),
				cfg.ShortcutsEnabled(),
				cfg.WSL.DefaultDistro)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigSetUse,
		Short: messages.ConfigSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePathsFunc()
			if err != nil {
				return err
			}
			content, err := readConfigContent(p)
			if err != nil {
				return err
			}
			patched, err := config.PatchSet(content, args[0], args[1])
			if err != nil {
				return err
			}
			if err := paths.EnsureHome(p); err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(p.ConfigPath, []byte(patched), 0o644); err != nil {
				return err
			}
			cmd.Printf(messages.ConfigSetDoneFmt, args[0])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigPathUse,
		Short: messages.ConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePathsFunc()
			if err != nil {
				return err
			}
			cmd.Println(p.ConfigPath)
			return nil
		},
	}
}

func readConfigContent(p paths.Paths) (string, error) {
	data, err := os.ReadFile(p.ConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf(messages.SystemReadFileErrFmt, p.ConfigPath, err)
	}
	return string(data), nil
}
