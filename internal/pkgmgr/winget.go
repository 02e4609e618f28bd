package pkgmgr

import (
	"context"
	"strings"

	"github.com/beaconworks/devstrap/internal/execx"
)

func init() {
	Register(Winget, func(opts Options) Manager { return &wingetManager{opts: opts} })
}

// wingetManager drives the Windows Package Manager CLI.
type wingetManager struct {
	opts Options
}

func (m *wingetManager) Kind() Kind { return Winget }

func (m *wingetManager) Detect() bool { return execx.Exists("winget") }

func (m *wingetManager) Install(ctx context.Context, req Request) error {
	args := []string{
		"install", "--id", req.ID, "--exact", "--silent",
		"--accept-package-agreements", "--accept-source-agreements",
	}
	if req.Version != "" {
		args = append(args, "--version", req.Version)
	}
	if req.Force {
		args = append(args, "--force")
	}
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "winget", args...)
}

func (m *wingetManager) Uninstall(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "winget",
		"uninstall", "--id", req.ID, "--exact", "--silent")
}

func (m *wingetManager) Upgrade(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "winget",
		"upgrade", "--id", req.ID, "--exact", "--silent",
		"--accept-package-agreements", "--accept-source-agreements")
}

func (m *wingetManager) InstalledVersion(ctx context.Context, req Request) (string, error) {
	out, err := execx.Output(ctx, "winget", "list", "--id", req.ID, "--exact")
	if err != nil {
		// winget exits non-zero when the package is not installed.
		if _, ok := execx.ExitCode(err); ok {
			return "", nil
		}
		return "", err
	}
	return parseWingetListVersion(out, req.ID), nil
}

// parseWingetListVersion extracts the Version column from `winget list`
// output. Rows read "Name Id Version [Available] Source"; the display
// name may contain spaces, so the version is the field after the ID.
func parseWingetListVersion(output, id string) string {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		for i, field := range fields {
			if strings.EqualFold(field, id) && i+1 < len(fields) {
				return fields[i+1]
			}
		}
	}
	return ""
}
