package pkgmgr

import (
	"context"
	"strings"

	"github.com/beaconworks/devstrap/internal/execx"
)

func init() {
	Register(Scoop, func(opts Options) Manager { return &scoopManager{opts: opts} })
}

// scoopManager drives the Scoop CLI through its shim.
type scoopManager struct {
	opts Options
}

func (m *scoopManager) Kind() Kind { return Scoop }

func (m *scoopManager) Detect() bool { return execx.Exists("scoop") }

func (m *scoopManager) Install(ctx context.Context, req Request) error {
	if req.Force {
		// Scoop has no reinstall flag; a forced install removes the
		// package first and ignores the result when it was absent.
		_ = m.Uninstall(ctx, req)
	}
	spec := req.ID
	if req.Version != "" {
		spec = req.ID + "@" + req.Version
	}
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "scoop", "install", spec)
}

func (m *scoopManager) Uninstall(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "scoop", "uninstall", req.ID)
}

func (m *scoopManager) Upgrade(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "scoop", "update", req.ID)
}

func (m *scoopManager) InstalledVersion(ctx context.Context, req Request) (string, error) {
	out, err := execx.Output(ctx, "scoop", "list", req.ID)
	if err != nil {
		if _, ok := execx.ExitCode(err); ok {
			return "", nil
		}
		return "", err
	}
	return parseScoopListVersion(out, req.ID), nil
}

// parseScoopListVersion extracts the version from `scoop list` output,
// whose rows read "Name Version Source Updated".
func parseScoopListVersion(output, id string) string {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.EqualFold(fields[0], id) {
			return fields[1]
		}
	}
	return ""
}
