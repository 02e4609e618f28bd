package pkgmgr

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/testutil"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
}

func recordedCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestWingetInstallArguments(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecordArgs(t, dir, "winget", log)
	testutil.PrependPath(t, dir)

	mgr, err := New(Winget, Options{Stdout: new(bytes.Buffer), Stderr: new(bytes.Buffer)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req := Request{ID: "Git.Git", Version: "2.43.0", Force: true}
	if err := mgr.Install(context.Background(), req); err != nil {
		t.Fatalf("Install: %v", err)
	}

	calls := recordedCalls(t, log)
	want := "install --id Git.Git --exact --silent --accept-package-agreements --accept-source-agreements --version 2.43.0 --force"
	if calls[0] != want {
		t.Fatalf("winget args = %q, want %q", calls[0], want)
	}
}

func TestWingetUninstallAndUpgradeArguments(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecordArgs(t, dir, "winget", log)
	testutil.PrependPath(t, dir)

	mgr, _ := New(Winget, Options{})
	ctx := context.Background()
	if err := mgr.Uninstall(ctx, Request{ID: "Git.Git"}); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if err := mgr.Upgrade(ctx, Request{ID: "Git.Git"}); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	calls := recordedCalls(t, log)
	if calls[0] != "uninstall --id Git.Git --exact --silent" {
		t.Fatalf("uninstall args = %q", calls[0])
	}
	if !strings.HasPrefix(calls[1], "upgrade --id Git.Git --exact --silent") {
		t.Fatalf("upgrade args = %q", calls[1])
	}
}

func TestChocoInstallArguments(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecordArgs(t, dir, "choco", log)
	testutil.PrependPath(t, dir)

	mgr, _ := New(Choco, Options{})
	req := Request{ID: "git", Version: "2.43.0", Force: true}
	if err := mgr.Install(context.Background(), req); err != nil {
		t.Fatalf("Install: %v", err)
	}

	calls := recordedCalls(t, log)
	if calls[0] != "install git -y --version 2.43.0 --force" {
		t.Fatalf("choco args = %q", calls[0])
	}
}

func TestChocoInstalledVersionArguments(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecordArgs(t, dir, "choco", log)
	testutil.PrependPath(t, dir)

	mgr, _ := New(Choco, Options{})
	if _, err := mgr.InstalledVersion(context.Background(), Request{ID: "git"}); err != nil {
		t.Fatalf("InstalledVersion: %v", err)
	}

	calls := recordedCalls(t, log)
	// choco 2.x removed --local-only; plain list is local.
	if calls[0] != "list --limit-output --exact git" {
		t.Fatalf("choco list args = %q", calls[0])
	}
}

func TestScoopForcedInstallUninstallsFirst(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	log := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecordArgs(t, dir, "scoop", log)
	testutil.PrependPath(t, dir)

	mgr, _ := New(Scoop, Options{})
	if err := mgr.Install(context.Background(), Request{ID: "nodejs", Version: "20.11.0", Force: true}); err != nil {
		t.Fatalf("Install: %v", err)
	}

	calls := recordedCalls(t, log)
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want uninstall then install", calls)
	}
	if calls[0] != "uninstall nodejs" {
		t.Fatalf("first call = %q", calls[0])
	}
	if calls[1] != "install nodejs@20.11.0" {
		t.Fatalf("second call = %q", calls[1])
	}
}

func TestDetectPrefersOrder(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "choco")
	testutil.WriteStub(t, dir, "scoop")
	t.Setenv("PATH", dir)

	mgr, ok := Detect(Options{}, []Kind{Winget, Choco, Scoop})
	if !ok {
		t.Fatal("Detect found nothing")
	}
	if mgr.Kind() != Choco {
		t.Fatalf("Detect picked %s, want choco", mgr.Kind())
	}
}

func TestDetectNoneAvailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, ok := Detect(Options{}, []Kind{Winget, Choco, Scoop}); ok {
		t.Fatal("Detect reported a manager on an empty PATH")
	}
}

func TestDetectAll(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "winget")
	testutil.WriteStub(t, dir, "scoop")
	t.Setenv("PATH", dir)

	found := DetectAll(Options{})
	if len(found) != 2 {
		t.Fatalf("DetectAll = %d managers, want 2", len(found))
	}
	if found[0].Kind() != Winget || found[1].Kind() != Scoop {
		t.Fatalf("DetectAll order = %s, %s", found[0].Kind(), found[1].Kind())
	}
}
