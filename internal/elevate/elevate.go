// Package elevate relaunches devstrap through a UAC prompt when an
// install needs an administrator token.
package elevate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/beaconworks/devstrap/internal/execx"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/scripts"
)

// EnvElevated marks a process that was already relaunched. Callers and
// CI set it to forbid further relaunch attempts.
const EnvElevated = "DEVSTRAP_ELEVATED"

// ErrRelaunched signals that the work ran in an elevated child process
// and the caller should exit without redoing it.
var ErrRelaunched = errors.New(messages.ElevateRelaunched)

var (
	isAdminFunc       = IsAdmin
	runPowerShellFunc = execx.RunPowerShell
	executableFunc    = os.Executable
	runtimeGOOS       = runtime.GOOS
)

// MaybeRelaunch re-runs the current binary with the given arguments
// behind a UAC prompt when the process lacks an administrator token.
// It returns nil when already elevated, and ErrRelaunched after the
// elevated run finished successfully.
func MaybeRelaunch(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	if isAdminFunc() {
		return nil
	}
	if os.Getenv(EnvElevated) != "" {
		return errors.New(messages.ElevateStillUnprivileged)
	}
	if runtimeGOOS != "windows" {
		return fmt.Errorf(messages.ElevateUnsupportedFmt, runtimeGOOS)
	}

	exe, err := executableFunc()
	if err != nil {
		return fmt.Errorf(messages.ElevateResolveExeFmt, err)
	}
	script, err := scripts.RenderElevate(exe, args)
	if err != nil {
		return err
	}
	if err := runPowerShellFunc(ctx, stdout, stderr, script); err != nil {
		return fmt.Errorf(messages.ElevateRelaunchFailedFmt, err)
	}
	return ErrRelaunched
}
