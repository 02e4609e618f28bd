package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/beaconworks/devstrap/internal/envfile"
	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/paths"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.EnvUse,
		Short: messages.EnvShort,
	}
	cmd.AddCommand(newEnvShowCmd())
	cmd.AddCommand(newEnvSetCmd())
	cmd.AddCommand(newEnvUnsetCmd())
	return cmd
}

func newEnvShowCmd() *cobra.Command {
	var powershell bool
	cmd := &cobra.Command{
		Use:   messages.EnvShowUse,
		Short: messages.EnvShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			env, err := readEnvFile(a.Paths)
			if err != nil {
				return err
			}
			if len(env) == 0 {
				cmd.Println(messages.EnvEmpty)
				return nil
			}
			if powershell {
				cmd.Print(envfile.RenderPowerShell(env))
				return nil
			}
			cmd.Print(envfile.Render(env))
			return nil
		},
	}
	cmd.Flags().BoolVar(&powershell, "powershell", false, messages.EnvFlagPowerShell)
	return cmd
}

func newEnvSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvSetUse,
		Short: messages.EnvSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			content, err := readEnvContent(a.Paths)
			if err != nil {
				return err
			}
			patched := envfile.Patch(content, map[string]string{args[0]: args[1]})
			if err := writeEnvContent(a.Paths, patched); err != nil {
				return err
			}
			cmd.Printf(messages.EnvSetDoneFmt, args[0])
			return nil
		},
	}
}

func newEnvUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvUnsetUse,
		Short: messages.EnvUnsetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			content, err := readEnvContent(a.Paths)
			if err != nil {
				return err
			}
			trimmed := envfile.Remove(content, []string{args[0]})
			if err := writeEnvContent(a.Paths, trimmed); err != nil {
				return err
			}
			cmd.Printf(messages.EnvUnsetDoneFmt, args[0])
			return nil
		},
	}
}

func readEnvContent(p paths.Paths) (string, error) {
	data, err := os.ReadFile(p.EnvPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf(messages.SystemReadFileErrFmt, p.EnvPath, err)
	}
	return string(data), nil
}

func readEnvFile(p paths.Paths) (map[string]string, error) {
	content, err := readEnvContent(p)
	if err != nil {
		return nil, err
	}
	return envfile.Parse(content)
}

func writeEnvContent(p paths.Paths, content string) error {
	if err := paths.EnsureHome(p); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(p.EnvPath, []byte(content), 0o644)
}
