// Package scripts holds the embedded PowerShell snippets devstrap runs
// for steps that only PowerShell can do well: bootstrapping package
// managers, registering AppX bundles, and creating Start Menu shortcuts.
package scripts

import (
	"embed"
	"fmt"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

//go:embed *.ps1
var files embed.FS

// Read returns an embedded PowerShell snippet by file name.
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf(messages.ScriptsReadErrFmt, name, err)
	}
	return string(data), nil
}

// bootstrapFiles maps package manager names to their installer scripts.
var bootstrapFiles = map[string]string{
	"winget": "winget-install.ps1",
	"choco":  "choco-install.ps1",
	"scoop":  "scoop-install.ps1",
}

// BootstrapScript returns the installer script for a package manager name.
func BootstrapScript(manager string) (string, error) {
	name, ok := bootstrapFiles[manager]
	if !ok {
		return "", fmt.Errorf(messages.ScriptsNoBootstrapFmt, manager)
	}
	return Read(name)
}

// RenderShortcut returns a script creating a Start Menu shortcut named
// name pointing at target.
func RenderShortcut(name, target string) (string, error) {
	script, err := Read("shortcut.ps1")
	if err != nil {
		return "", err
	}
	script = strings.ReplaceAll(script, "__NAME__", psEscape(name))
	script = strings.ReplaceAll(script, "__TARGET__", psEscape(target))
	return script, nil
}

// RenderAppxInstall returns a script registering an .appx or .msixbundle
// from a local path.
func RenderAppxInstall(path string) (string, error) {
	script, err := Read("appx-install.ps1")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(script, "__PATH__", psEscape(path)), nil
}

// RenderElevate returns a script relaunching exe with args through a
// UAC prompt and propagating its exit code. The elevated child runs
// with DEVSTRAP_ELEVATED set so it refuses to relaunch again.
func RenderElevate(exe string, args []string) (string, error) {
	script, err := Read("elevate.ps1")
	if err != nil {
		return "", err
	}
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, psQuoteSingle(arg))
	}
	script = strings.ReplaceAll(script, "__EXE__", psEscape(exe))
	return strings.ReplaceAll(script, "__ARGS__", strings.Join(quoted, ", ")), nil
}

// psEscape escapes a value for interpolation inside a double-quoted
// PowerShell string: backticks first, then quotes and dollar signs.
func psEscape(value string) string {
	escaped := strings.ReplaceAll(value, "`", "``")
	escaped = strings.ReplaceAll(escaped, `"`, "`\"")
	escaped = strings.ReplaceAll(escaped, "$", "`$")
	return escaped
}

// psQuoteSingle wraps a value in single quotes, doubling embedded ones.
func psQuoteSingle(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
