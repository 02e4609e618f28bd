package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/wsl"
)

func TestWSLListRendersDistros(t *testing.T) {
	orig := wslListFunc
	defer func() { wslListFunc = orig }()
	wslListFunc = func(ctx context.Context) ([]wsl.Distro, error) {
		return []wsl.Distro{
			{Name: "Ubuntu", State: "Running", Version: 2, Default: true},
			{Name: "Debian", State: "Stopped", Version: 2},
		}, nil
	}

	out, err := runCLI(t, "wsl", "list")
	if err != nil {
		t.Fatalf("wsl list error: %v", err)
	}
	if !strings.Contains(out, "Ubuntu (default)") {
		t.Errorf("missing default marker in %q", out)
	}
	if !strings.Contains(out, "Debian") {
		t.Errorf("missing distro in %q", out)
	}
}

func TestWSLListEmpty(t *testing.T) {
	orig := wslListFunc
	defer func() { wslListFunc = orig }()
	wslListFunc = func(ctx context.Context) ([]wsl.Distro, error) { return nil, nil }

	out, err := runCLI(t, "wsl", "list")
	if err != nil {
		t.Fatalf("wsl list error: %v", err)
	}
	if !strings.Contains(out, messages.WSLListNone) {
		t.Fatalf("expected empty notice, got %q", out)
	}
}

func TestWSLInstallDefaultsDistroFromConfig(t *testing.T) {
	origEnable := wslEnableFeaturesFunc
	origInstall := wslInstallFunc
	defer func() {
		wslEnableFeaturesFunc = origEnable
		wslInstallFunc = origInstall
	}()
	wslEnableFeaturesFunc = func(ctx context.Context, stdout, stderr io.Writer) error { return nil }
	var installedName string
	wslInstallFunc = func(ctx context.Context, stdout, stderr io.Writer, name string) error {
		installedName = name
		return nil
	}

	out, err := runCLI(t, "wsl", "install")
	if err != nil {
		t.Fatalf("wsl install error: %v", err)
	}
	if installedName != "Ubuntu" {
		t.Fatalf("expected configured default distro, got %q", installedName)
	}
	if !strings.Contains(out, "Ubuntu installed") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWSLInstallRebootRequired(t *testing.T) {
	orig := wslEnableFeaturesFunc
	defer func() { wslEnableFeaturesFunc = orig }()
	wslEnableFeaturesFunc = func(ctx context.Context, stdout, stderr io.Writer) error {
		return wsl.ErrRebootRequired
	}

	out, err := runCLI(t, "wsl", "install", "Debian")
	if err != nil {
		t.Fatalf("wsl install error: %v", err)
	}
	if !strings.Contains(out, messages.WSLRebootRequired) {
		t.Fatalf("expected reboot notice, got %q", out)
	}
}

func TestWSLRemove(t *testing.T) {
	orig := wslUnregisterFunc
	defer func() { wslUnregisterFunc = orig }()
	var removed string
	wslUnregisterFunc = func(ctx context.Context, name string) error {
		removed = name
		return nil
	}

	out, err := runCLI(t, "wsl", "remove", "Debian")
	if err != nil {
		t.Fatalf("wsl remove error: %v", err)
	}
	if removed != "Debian" {
		t.Fatalf("expected Debian unregistered, got %q", removed)
	}
	if !strings.Contains(out, "Debian unregistered") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWSLRemoveRequiresName(t *testing.T) {
	if _, err := runCLI(t, "wsl", "remove"); err == nil {
		t.Fatalf("expected error")
	}
}
