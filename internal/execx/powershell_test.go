package execx

import (
	"context"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/testutil"
)

func TestPowerShellExePrefersPwsh(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "pwsh")
	testutil.WriteStub(t, dir, "powershell")
	t.Setenv("PATH", dir)

	exe, err := PowerShellExe()
	if err != nil {
		t.Fatalf("PowerShellExe: %v", err)
	}
	if !strings.HasSuffix(exe, "pwsh") {
		t.Fatalf("exe = %q, want pwsh", exe)
	}
}

func TestPowerShellExeFallsBack(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "powershell")
	t.Setenv("PATH", dir)

	exe, err := PowerShellExe()
	if err != nil {
		t.Fatalf("PowerShellExe: %v", err)
	}
	if !strings.HasSuffix(exe, "powershell") {
		t.Fatalf("exe = %q, want powershell", exe)
	}
}

func TestPowerShellExeMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := PowerShellExe(); err == nil {
		t.Fatal("expected error with no PowerShell on PATH")
	}
}

func TestPowerShellOutput(t *testing.T) {
	requirePosixShell(t)
	dir := t.TempDir()
	testutil.WriteStubWithOutput(t, dir, "pwsh", "OSVersion 10.0.22631")
	t.Setenv("PATH", dir)

	out, err := PowerShellOutput(context.Background(), "[Environment]::OSVersion")
	if err != nil {
		t.Fatalf("PowerShellOutput: %v", err)
	}
	if out != "OSVersion 10.0.22631" {
		t.Fatalf("out = %q", out)
	}
}
