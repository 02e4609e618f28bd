package pkgmgr

import (
	"context"
	"strings"

	"github.com/beaconworks/devstrap/internal/execx"
)

func init() {
	Register(Choco, func(opts Options) Manager { return &chocoManager{opts: opts} })
}

// chocoManager drives the Chocolatey CLI.
type chocoManager struct {
	opts Options
}

func (m *chocoManager) Kind() Kind { return Choco }

func (m *chocoManager) Detect() bool { return execx.Exists("choco") }

func (m *chocoManager) Install(ctx context.Context, req Request) error {
	args := []string{"install", req.ID, "-y"}
	if req.Version != "" {
		args = append(args, "--version", req.Version)
	}
	if req.Force {
		args = append(args, "--force")
	}
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "choco", args...)
}

func (m *chocoManager) Uninstall(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "choco", "uninstall", req.ID, "-y")
}

func (m *chocoManager) Upgrade(ctx context.Context, req Request) error {
	return execx.Run(ctx, m.opts.stdout(), m.opts.stderr(), "choco", "upgrade", req.ID, "-y")
}

func (m *chocoManager) InstalledVersion(ctx context.Context, req Request) (string, error) {
	// Chocolatey 2.x dropped --local-only; plain list reports local
	// packages.
	out, err := execx.Output(ctx, "choco", "list", "--limit-output", "--exact", req.ID)
	if err != nil {
		if _, ok := execx.ExitCode(err); ok {
			return "", nil
		}
		return "", err
	}
	return parseChocoListVersion(out, req.ID), nil
}

// parseChocoListVersion extracts the version from `choco list
// --limit-output` lines of the form "id|version".
func parseChocoListVersion(output, id string) string {
	for _, line := range strings.Split(output, "\n") {
		name, version, ok := strings.Cut(strings.TrimSpace(line), "|")
		if ok && strings.EqualFold(name, id) {
			return version
		}
	}
	return ""
}
