// Package wsl drives wsl.exe and dism.exe for Windows Subsystem for
// Linux distributions. wsl.exe prints UTF-16LE to pipes, so command
// output is decoded before parsing.
package wsl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/beaconworks/devstrap/internal/execx"
	"github.com/beaconworks/devstrap/internal/messages"
)

// ErrRebootRequired reports that a Windows feature was enabled but
// needs a reboot before WSL works.
var ErrRebootRequired = errors.New(messages.WSLRebootRequired)

// requiredFeatures are the optional Windows features WSL 2 depends on.
var requiredFeatures = []string{
	"Microsoft-Windows-Subsystem-Linux",
	"VirtualMachinePlatform",
}

// dism reports exit code 3010 when the change needs a reboot.
const dismExitRebootRequired = 3010

var (
	existsFunc    = execx.Exists
	outputRawFunc = execx.OutputRaw
	runFunc       = execx.Run
	runQuietFunc  = execx.RunQuiet
	exitCodeFunc  = execx.ExitCode
	runtimeGOOS   = runtime.GOOS
)

// Distro describes one installed WSL distribution.
type Distro struct {
	Name    string
	State   string
	Version int
	Default bool
}

// Available reports whether wsl.exe can be invoked at all.
func Available() bool {
	return runtimeGOOS == "windows" && existsFunc("wsl")
}

// List returns the installed distributions. An empty slice with no
// error means WSL is present but has no distributions yet.
func List(ctx context.Context) ([]Distro, error) {
	if err := requireWindows(); err != nil {
		return nil, err
	}
	raw, err := outputRawFunc(ctx, "wsl", "--list", "--verbose")
	if err != nil {
		// wsl.exe exits nonzero when no distribution is installed.
		if _, hasCode := exitCodeFunc(err); hasCode {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.WSLListFailedFmt, err)
	}
	return parseVerboseList(decodeConsoleOutput(raw)), nil
}

// ListOnline returns the distribution names available for install.
func ListOnline(ctx context.Context) ([]string, error) {
	if err := requireWindows(); err != nil {
		return nil, err
	}
	raw, err := outputRawFunc(ctx, "wsl", "--list", "--online")
	if err != nil {
		return nil, fmt.Errorf(messages.WSLListFailedFmt, err)
	}
	return parseOnlineList(decodeConsoleOutput(raw)), nil
}

// Install installs a distribution, streaming installer output. An
// empty name installs the WSL default distribution.
func Install(ctx context.Context, stdout, stderr io.Writer, name string) error {
	if err := requireWindows(); err != nil {
		return err
	}
	args := []string{"--install"}
	if name != "" {
		args = append(args, "-d", name)
	}
	if err := runFunc(ctx, stdout, stderr, "wsl", args...); err != nil {
		if name == "" {
			name = "(default)"
		}
		return fmt.Errorf(messages.WSLInstallFailedFmt, name, err)
	}
	return nil
}

// Unregister removes a distribution and deletes its filesystem.
func Unregister(ctx context.Context, name string) error {
	if err := requireWindows(); err != nil {
		return err
	}
	if err := runQuietFunc(ctx, "wsl", "--unregister", name); err != nil {
		return fmt.Errorf(messages.WSLUnregisterFailedFmt, name, err)
	}
	return nil
}

// SetDefault marks a distribution as the default.
func SetDefault(ctx context.Context, name string) error {
	if err := requireWindows(); err != nil {
		return err
	}
	if err := runQuietFunc(ctx, "wsl", "--set-default", name); err != nil {
		return fmt.Errorf(messages.WSLSetDefaultFailedFmt, name, err)
	}
	return nil
}

// EnableFeatures turns on the Windows features WSL needs via dism.exe.
// Requires elevation. Returns ErrRebootRequired when dism asks for a
// restart to finish.
func EnableFeatures(ctx context.Context, stdout, stderr io.Writer) error {
	if err := requireWindows(); err != nil {
		return err
	}
	rebootNeeded := false
	for _, feature := range requiredFeatures {
		err := runFunc(ctx, stdout, stderr, "dism.exe",
			"/online", "/enable-feature", "/featurename:"+feature, "/all", "/norestart")
		if err != nil {
			if code, ok := exitCodeFunc(err); ok && code == dismExitRebootRequired {
				rebootNeeded = true
				continue
			}
			return fmt.Errorf(messages.WSLEnableFeatureFailedFmt, feature, err)
		}
	}
	if rebootNeeded {
		return ErrRebootRequired
	}
	return nil
}

func requireWindows() error {
	if runtimeGOOS != "windows" {
		return fmt.Errorf(messages.SystemUnsupportedOSFmt, "wsl", runtimeGOOS)
	}
	if !existsFunc("wsl") {
		return errors.New(messages.WSLNotAvailable)
	}
	return nil
}

// parseVerboseList parses `wsl --list --verbose` output:
//
//	  NAME      STATE           VERSION
//	* Ubuntu    Running         2
//	  Debian    Stopped         2
func parseVerboseList(output string) []Distro {
	var distros []Distro
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "NAME") {
			continue
		}
		isDefault := strings.HasPrefix(trimmed, "*")
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
		fields := strings.Fields(trimmed)
		if len(fields) < 3 {
			continue
		}
		version, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		distros = append(distros, Distro{
			Name:    fields[0],
			State:   fields[len(fields)-2],
			Version: version,
			Default: isDefault,
		})
	}
	return distros
}

// parseOnlineList parses `wsl --list --online` output, keeping the
// NAME column of every row under the header.
func parseOnlineList(output string) []string {
	var names []string
	inTable := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "NAME") {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

// decodeConsoleOutput converts wsl.exe pipe output to UTF-8. wsl.exe
// writes UTF-16LE; dism and other tools write plain bytes.
func decodeConsoleOutput(raw []byte) string {
	if !looksUTF16LE(raw) {
		return string(raw)
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func looksUTF16LE(raw []byte) bool {
	if len(raw) < 2 {
		return false
	}
	if raw[0] == 0xFF && raw[1] == 0xFE {
		return true
	}
	return raw[1] == 0x00
}
