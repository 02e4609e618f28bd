package execx

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/beaconworks/devstrap/internal/messages"
)

// PowerShellExe resolves the PowerShell executable, preferring pwsh and
// falling back to Windows PowerShell.
func PowerShellExe() (string, error) {
	if path, err := exec.LookPath("pwsh"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("powershell"); err == nil {
		return path, nil
	}
	return "", errors.New(messages.ExecPowerShellNotFound)
}

// powerShellArgs wraps a script for non-interactive execution.
func powerShellArgs(script string) []string {
	return []string{"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-Command", script}
}

// RunPowerShell executes script non-interactively, streaming output.
func RunPowerShell(ctx context.Context, stdout, stderr io.Writer, script string) error {
	exe, err := PowerShellExe()
	if err != nil {
		return err
	}
	return Run(ctx, stdout, stderr, exe, powerShellArgs(script)...)
}

// PowerShellOutput executes script non-interactively and returns trimmed stdout.
func PowerShellOutput(ctx context.Context, script string) (string, error) {
	exe, err := PowerShellExe()
	if err != nil {
		return "", err
	}
	return Output(ctx, exe, powerShellArgs(script)...)
}
