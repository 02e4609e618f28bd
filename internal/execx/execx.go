// Package execx runs the external commands devstrap drives: package
// manager CLIs, installers, version checks, and PowerShell snippets.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

// stderrTailLimit bounds how much captured stderr is attached to errors.
const stderrTailLimit = 400

// Exists reports whether name resolves to an executable on PATH.
func Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes name with args, streaming output to the provided writers.
// Installer processes inherit the writers so their progress stays visible.
func Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(messages.ExecCommandFailedFmt, displayCommand(name, args), err)
	}
	return nil
}

// RunQuiet executes name with args and discards output. On failure the
// captured stderr tail is attached to the returned error.
func RunQuiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if tail := tailOf(stderr.String()); tail != "" {
			return fmt.Errorf(messages.ExecCommandFailedStderrFmt, displayCommand(name, args), err, tail)
		}
		return fmt.Errorf(messages.ExecCommandFailedFmt, displayCommand(name, args), err)
	}
	return nil
}

// Output executes name with args and returns trimmed stdout.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if tail := tailOf(stderr.String()); tail != "" {
			return "", fmt.Errorf(messages.ExecCommandFailedStderrFmt, displayCommand(name, args), err, tail)
		}
		return "", fmt.Errorf(messages.ExecCommandFailedFmt, displayCommand(name, args), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// OutputRaw executes name with args and returns stdout bytes untouched.
// Some Windows tools emit UTF-16LE, so their callers decode before
// parsing.
func OutputRaw(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if tail := tailOf(stderr.String()); tail != "" {
			return nil, fmt.Errorf(messages.ExecCommandFailedStderrFmt, displayCommand(name, args), err, tail)
		}
		return nil, fmt.Errorf(messages.ExecCommandFailedFmt, displayCommand(name, args), err)
	}
	return stdout.Bytes(), nil
}

// ExitCode extracts the process exit code from err. The boolean reports
// whether err carries one.
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

func displayCommand(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func tailOf(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) <= stderrTailLimit {
		return trimmed
	}
	return "..." + trimmed[len(trimmed)-stderrTailLimit:]
}
