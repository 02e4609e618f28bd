package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
}

func TestWriteStubWithExitCode(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "fail-tool", 3)

	err := exec.Command(filepath.Join(dir, "fail-tool")).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("exit code = %v, want 3", err)
	}
}

func TestWriteStubWithOutput(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	WriteStubWithOutput(t, dir, "git", "git version 2.43.0")

	out, err := exec.Command(filepath.Join(dir, "git"), "--version").Output()
	if err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "git version 2.43.0" {
		t.Fatalf("output = %q", got)
	}
}

func TestWriteStubRecordArgs(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	WriteStubRecordArgs(t, dir, "choco", log)

	if err := exec.Command(filepath.Join(dir, "choco"), "install", "git", "-y").Run(); err != nil {
		t.Fatalf("run stub: %v", err)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "install git -y" {
		t.Fatalf("recorded args = %q", got)
	}
}

func TestWriteStubExpectArg(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	WriteStubExpectArg(t, dir, "winget", "--silent")

	if err := exec.Command(filepath.Join(dir, "winget"), "install", "--silent").Run(); err != nil {
		t.Fatalf("expected success with matching arg: %v", err)
	}
	if err := exec.Command(filepath.Join(dir, "winget"), "install").Run(); err == nil {
		t.Fatal("expected failure without matching arg")
	}
}

func TestPrependPath(t *testing.T) {
	dir := t.TempDir()
	PrependPath(t, dir)
	if !strings.HasPrefix(os.Getenv("PATH"), dir+string(os.PathListSeparator)) {
		t.Fatalf("PATH = %q does not start with %q", os.Getenv("PATH"), dir)
	}
}

func TestWithWorkingDir(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	WithWorkingDir(t, dir, func() {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("getwd inside: %v", err)
		}
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			t.Fatalf("eval symlinks: %v", err)
		}
		got, err := filepath.EvalSymlinks(cwd)
		if err != nil {
			t.Fatalf("eval symlinks cwd: %v", err)
		}
		if got != resolved {
			t.Fatalf("cwd = %q, want %q", got, resolved)
		}
	})
	after, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd after: %v", err)
	}
	if after != orig {
		t.Fatalf("cwd not restored: %q != %q", after, orig)
	}
}
