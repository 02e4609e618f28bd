// Package inspect detects whether catalog tools are already installed
// and what version they carry.
package inspect

import (
	"context"
	"regexp"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/execx"
	"github.com/beaconworks/devstrap/internal/semver"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/winreg"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Status -linecomment

// Status is the detection outcome for one tool.
type Status int

const (
	// StatusUnknown means detection could not run.
	StatusUnknown Status = iota // unknown
	// StatusNotInstalled means no probe found the tool.
	StatusNotInstalled // not installed
	// StatusInstalled means at least one probe found the tool.
	StatusInstalled // installed
)

// Detection sources, in resolution order.
const (
	SourceState    = "state"
	SourceCommand  = "command"
	SourceRegistry = "registry"
	SourceService  = "service"
)

// Detection is the result of probing one tool.
type Detection struct {
	Status  Status
	Version string
	Source  string
}

// Installed reports whether the tool was found.
func (d Detection) Installed() bool {
	return d.Status == StatusInstalled
}

var (
	commandExistsFunc = execx.Exists
	commandOutputFunc = execx.Output
	findProductsFunc  = winreg.FindProducts
	serviceExistsFunc = winreg.ServiceExists
)

// Detect resolves whether a tool is installed. Probes run in order:
// devstrap state record, the tool's CLI on PATH, the uninstall
// registry, the service table. The first hit wins; probe errors fall
// through to the next probe.
func Detect(ctx context.Context, tool catalog.Tool, st state.State) Detection {
	if record, ok := st.Get(tool.ID); ok {
		return Detection{Status: StatusInstalled, Version: record.Version, Source: SourceState}
	}

	if tool.CheckCommand != "" && commandExistsFunc(tool.CheckCommand) {
		version, _ := CommandVersion(ctx, tool)
		return Detection{Status: StatusInstalled, Version: version, Source: SourceCommand}
	}

	if len(tool.RegistryNames) > 0 {
		products, err := findProductsFunc(tool.RegistryNames)
		if err == nil && len(products) > 0 {
			return Detection{
				Status:  StatusInstalled,
				Version: extractVersion(tool, products[0].DisplayVersion),
				Source:  SourceRegistry,
			}
		}
	}

	if tool.ServiceName != "" {
		exists, err := serviceExistsFunc(tool.ServiceName)
		if err == nil && exists {
			return Detection{Status: StatusInstalled, Source: SourceService}
		}
	}

	return Detection{Status: StatusNotInstalled}
}

// CommandVersion runs the tool's version command and extracts a dotted
// version from its output.
func CommandVersion(ctx context.Context, tool catalog.Tool) (string, error) {
	output, err := commandOutputFunc(ctx, tool.CheckCommand, tool.VersionArgs...)
	if err != nil {
		return "", err
	}
	return extractVersion(tool, output), nil
}

// extractVersion applies the tool's version pattern when set, taking
// the first capture group if the pattern has one. Without a pattern the
// first dotted number run in the text wins.
func extractVersion(tool catalog.Tool, raw string) string {
	if tool.VersionPattern != "" {
		re, err := regexp.Compile(tool.VersionPattern)
		if err != nil {
			return ""
		}
		match := re.FindStringSubmatch(raw)
		if len(match) > 1 {
			return match[1]
		}
		if len(match) == 1 {
			return match[0]
		}
		return ""
	}
	version, _ := semver.Extract(raw)
	return version
}
