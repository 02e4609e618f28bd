package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/paths"
	"github.com/beaconworks/devstrap/internal/updatewarn"
)

func TestEnvShowEmpty(t *testing.T) {
	out, err := runCLI(t, "env", "show")
	if err != nil {
		t.Fatalf("env show error: %v", err)
	}
	if !strings.Contains(out, messages.EnvEmpty) {
		t.Fatalf("expected empty notice, got %q", out)
	}
}

func TestEnvSetShowUnset(t *testing.T) {
	home := t.TempDir()
	t.Setenv(paths.EnvHome, home)
	t.Setenv(updatewarn.EnvNoUpdateCheck, "1")

	run := func(args ...string) (string, error) {
		var sb strings.Builder
		err := execute(append([]string{"devstrap"}, args...), &sb, &sb)
		return sb.String(), err
	}

	if _, err := run("env", "set", "JAVA_HOME", "C:\\tools\\jdk"); err != nil {
		t.Fatalf("env set error: %v", err)
	}

	out, err := run("env", "show")
	if err != nil {
		t.Fatalf("env show error: %v", err)
	}
	if !strings.Contains(out, "JAVA_HOME") {
		t.Fatalf("expected export in %q", out)
	}

	psOut, err := run("env", "show", "--powershell")
	if err != nil {
		t.Fatalf("env show --powershell error: %v", err)
	}
	if !strings.Contains(psOut, "$env:JAVA_HOME") {
		t.Fatalf("expected PowerShell syntax in %q", psOut)
	}

	if _, err := run("env", "unset", "JAVA_HOME"); err != nil {
		t.Fatalf("env unset error: %v", err)
	}
	out, err = run("env", "show")
	if err != nil {
		t.Fatalf("env show error: %v", err)
	}
	if !strings.Contains(out, messages.EnvEmpty) {
		t.Fatalf("expected empty notice after unset, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(home, "env"))
	if err != nil {
		t.Fatalf("read env file: %v", err)
	}
	if strings.Contains(string(data), "JAVA_HOME") {
		t.Fatalf("env file still contains removed key: %q", string(data))
	}
}
