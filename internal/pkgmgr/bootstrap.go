package pkgmgr

import (
	"context"
	"fmt"

	"github.com/beaconworks/devstrap/internal/execx"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/scripts"
)

// runPowerShellFunc is a seam for tests.
var runPowerShellFunc = execx.RunPowerShell

// Bootstrap installs the package manager itself by running its embedded
// installer script through PowerShell.
func Bootstrap(ctx context.Context, kind Kind, opts Options) error {
	script, err := scripts.BootstrapScript(kind.String())
	if err != nil {
		return err
	}
	if err := runPowerShellFunc(ctx, opts.stdout(), opts.stderr(), script); err != nil {
		return fmt.Errorf(messages.ManagerBootstrapFailedFmt, kind, err)
	}
	return nil
}
