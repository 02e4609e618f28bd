package shims

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCreatesShimPair(t *testing.T) {
	t.Parallel()
	binDir := filepath.Join(t.TempDir(), "bin")

	shim := Shim{Name: "firebase", Target: `C:\Users\dev\.devstrap\tools\firebase\firebase-tools-win.exe`}
	if err := Write(RealSystem{}, binDir, shim); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	cmdContent, err := os.ReadFile(filepath.Join(binDir, "firebase.cmd"))
	if err != nil {
		t.Fatalf("expected firebase.cmd: %v", err)
	}
	if !strings.HasPrefix(string(cmdContent), "@echo off\r\n") {
		t.Fatalf("cmd shim missing echo-off prologue: %q", cmdContent)
	}
	if !strings.Contains(string(cmdContent), `"`+shim.Target+`" %*`) {
		t.Fatalf("cmd shim missing target invocation: %q", cmdContent)
	}

	ps1Content, err := os.ReadFile(filepath.Join(binDir, "firebase.ps1"))
	if err != nil {
		t.Fatalf("expected firebase.ps1: %v", err)
	}
	if !strings.Contains(string(ps1Content), "& '"+shim.Target+"' @args") {
		t.Fatalf("ps1 shim missing target invocation: %q", ps1Content)
	}
}

func TestWriteIncludesFixedArgs(t *testing.T) {
	t.Parallel()
	binDir := filepath.Join(t.TempDir(), "bin")

	shim := Shim{
		Name:   "psql",
		Target: `C:\Program Files\PostgreSQL\16\bin\psql.exe`,
		Args:   []string{"--host", "localhost"},
	}
	if err := Write(RealSystem{}, binDir, shim); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	cmdContent, err := os.ReadFile(filepath.Join(binDir, "psql.cmd"))
	if err != nil {
		t.Fatalf("read cmd shim: %v", err)
	}
	if !strings.Contains(string(cmdContent), `"--host" "localhost" %*`) {
		t.Fatalf("cmd shim missing fixed args: %q", cmdContent)
	}
}

func TestRemoveDeletesBothShims(t *testing.T) {
	t.Parallel()
	binDir := filepath.Join(t.TempDir(), "bin")

	if err := Write(RealSystem{}, binDir, Shim{Name: "gcloud", Target: `C:\tools\gcloud.cmd`}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := Remove(RealSystem{}, binDir, "gcloud"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(binDir, "gcloud.cmd")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cmd shim still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(binDir, "gcloud.ps1")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ps1 shim still present: %v", err)
	}
}

func TestRemoveMissingShimIsNotError(t *testing.T) {
	t.Parallel()
	if err := Remove(RealSystem{}, t.TempDir(), "never-installed"); err != nil {
		t.Fatalf("Remove error for missing shim: %v", err)
	}
}

func TestListReturnsSortedNames(t *testing.T) {
	t.Parallel()
	binDir := filepath.Join(t.TempDir(), "bin")

	for _, name := range []string{"terraform", "firebase"} {
		if err := Write(RealSystem{}, binDir, Shim{Name: name, Target: `C:\tools\` + name + `.exe`}); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(binDir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatalf("write extra file: %v", err)
	}

	names, err := List(RealSystem{}, binDir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) != 2 || names[0] != "firebase" || names[1] != "terraform" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestListMissingDirReturnsEmpty(t *testing.T) {
	t.Parallel()
	names, err := List(RealSystem{}, filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
}

func TestRenderPowerShellQuotesTarget(t *testing.T) {
	t.Parallel()
	got := renderPowerShell(Shim{Name: "odd", Target: `C:\it's here\tool.exe`})
	if !strings.Contains(got, `'C:\it''s here\tool.exe'`) {
		t.Fatalf("single quotes not doubled: %q", got)
	}
}

// mockSystem implements System for testing.
type mockSystem struct {
	MkdirAllFunc        func(path string, perm os.FileMode) error
	WriteFileAtomicFunc func(path string, data []byte, perm os.FileMode) error
	RemoveFunc          func(path string) error
	ReadDirFunc         func(path string) ([]os.DirEntry, error)
}

func (m *mockSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path, perm)
	}
	return nil
}

func (m *mockSystem) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if m.WriteFileAtomicFunc != nil {
		return m.WriteFileAtomicFunc(path, data, perm)
	}
	return nil
}

func (m *mockSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	return nil
}

func (m *mockSystem) ReadDir(path string) ([]os.DirEntry, error) {
	if m.ReadDirFunc != nil {
		return m.ReadDirFunc(path)
	}
	return nil, nil
}

func TestWritePs1Error(t *testing.T) {
	t.Parallel()
	sys := &mockSystem{
		WriteFileAtomicFunc: func(path string, data []byte, perm os.FileMode) error {
			if filepath.Ext(path) == ".ps1" {
				return errors.New("write fail")
			}
			return nil
		},
	}
	if err := Write(sys, t.TempDir(), Shim{Name: "git", Target: `C:\git.exe`}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRemovePropagatesUnexpectedError(t *testing.T) {
	t.Parallel()
	sys := &mockSystem{
		RemoveFunc: func(path string) error { return errors.New("locked") },
	}
	if err := Remove(sys, t.TempDir(), "git"); err == nil {
		t.Fatal("expected error")
	}
}
