// Package shims writes small command shims into the devstrap bin
// directory so binaries installed from direct downloads are reachable
// on PATH. Each shim is a .cmd file for cmd.exe plus a .ps1 twin for
// PowerShell.
package shims

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
)

// System is the minimal interface needed for shim operations.
type System interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Remove(path string) error
	ReadDir(path string) ([]os.DirEntry, error)
}

// RealSystem implements System using actual system calls.
type RealSystem struct{}

// MkdirAll creates a directory and all parent directories.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to path atomically.
func (RealSystem) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(path, data, perm)
}

// Remove deletes a file.
func (RealSystem) Remove(path string) error {
	return os.Remove(path)
}

// ReadDir lists a directory.
func (RealSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Shim points a command name at an installed binary, with optional
// fixed arguments prepended before the caller's own.
type Shim struct {
	Name   string
	Target string
	Args   []string
}

// Write writes the cmd and PowerShell shims for shim into binDir.
func Write(sys System, binDir string, shim Shim) error {
	if err := sys.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf(messages.SystemCreateDirErrFmt, binDir, err)
	}

	cmdPath := filepath.Join(binDir, shim.Name+".cmd")
	if err := sys.WriteFileAtomic(cmdPath, []byte(renderCmd(shim)), 0o755); err != nil {
		return fmt.Errorf(messages.SystemWriteFileErrFmt, cmdPath, err)
	}

	ps1Path := filepath.Join(binDir, shim.Name+".ps1")
	if err := sys.WriteFileAtomic(ps1Path, []byte(renderPowerShell(shim)), 0o755); err != nil {
		return fmt.Errorf(messages.SystemWriteFileErrFmt, ps1Path, err)
	}

	return nil
}

// Remove deletes the shims for name from binDir. Missing files are not
// an error.
func Remove(sys System, binDir string, name string) error {
	for _, ext := range []string{".cmd", ".ps1"} {
		path := filepath.Join(binDir, name+ext)
		if err := sys.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.SystemRemoveErrFmt, path, err)
		}
	}
	return nil
}

// List returns the shimmed command names in binDir, sorted and
// deduplicated across the .cmd and .ps1 twins.
func List(sys System, binDir string) ([]string, error) {
	entries, err := sys.ReadDir(binDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.SystemReadFileErrFmt, binDir, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".cmd" && ext != ".ps1" {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[base] {
			seen[base] = true
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}

// renderCmd produces the cmd.exe shim. cmd scripts want CRLF endings.
func renderCmd(shim Shim) string {
	parts := []string{cmdQuote(shim.Target)}
	for _, arg := range shim.Args {
		parts = append(parts, cmdQuote(arg))
	}
	return "@echo off\r\n" + strings.Join(parts, " ") + " %*\r\n"
}

func renderPowerShell(shim Shim) string {
	parts := []string{"&", psQuoteSingle(shim.Target)}
	for _, arg := range shim.Args {
		parts = append(parts, psQuoteSingle(arg))
	}
	return strings.Join(parts, " ") + " @args\n"
}

func cmdQuote(value string) string {
	return "\"" + value + "\""
}

func psQuoteSingle(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
