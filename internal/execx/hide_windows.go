//go:build windows

package execx

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps background queries from flashing console windows.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
