package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigValid(t *testing.T) {
	path := writeConfig(t, `
[managers]
order = ["choco", "winget"]

[network]
timeout_seconds = 60
retries = 2

[install]
silent = false
shortcuts = true

[wsl]
default_distro = "Debian"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.Managers.Order; len(got) != 2 || got[0] != "choco" {
		t.Fatalf("Order = %v", got)
	}
	if cfg.SilentDefault() {
		t.Fatal("SilentDefault = true, want false")
	}
	if !cfg.ShortcutsEnabled() {
		t.Fatal("ShortcutsEnabled = false, want true")
	}
	if cfg.Timeout().Seconds() != 60 {
		t.Fatalf("Timeout = %v", cfg.Timeout())
	}
	if cfg.WSL.DefaultDistro != "Debian" {
		t.Fatalf("DefaultDistro = %q", cfg.WSL.DefaultDistro)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error %v does not wrap os.ErrNotExist", err)
	}
}

func TestLoadOrDefaultMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if len(cfg.Managers.Order) != 3 || cfg.Managers.Order[0] != "winget" {
		t.Fatalf("default Order = %v", cfg.Managers.Order)
	}
	if !cfg.SilentDefault() {
		t.Fatal("default SilentDefault = false")
	}
	if cfg.ShortcutsEnabled() {
		t.Fatal("default ShortcutsEnabled = true")
	}
}

func TestLoadOrDefaultPropagatesSyntaxError(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("[managers]\nordering = [\"winget\"]\n"), "test")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("error %v does not wrap ErrConfigValidation", err)
	}
}

func TestParseConfigRejectsUnknownManager(t *testing.T) {
	_, err := ParseConfig([]byte("[managers]\norder = [\"apt\"]\n"), "test")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("error %v does not wrap ErrConfigValidation", err)
	}
	if !strings.Contains(err.Error(), "apt") {
		t.Fatalf("error %v does not name the bad manager", err)
	}
}

func TestParseConfigRejectsDuplicateManager(t *testing.T) {
	_, err := ParseConfig([]byte("[managers]\norder = [\"choco\", \"Choco\"]\n"), "test")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseConfigRejectsNegativeRetries(t *testing.T) {
	_, err := ParseConfig([]byte("[network]\nretries = -1\n"), "test")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseConfigLenientIgnoresValidation(t *testing.T) {
	cfg, err := ParseConfigLenient([]byte("[managers]\norder = [\"apt\"]\n"), "test")
	if err != nil {
		t.Fatalf("ParseConfigLenient: %v", err)
	}
	if len(cfg.Managers.Order) != 1 || cfg.Managers.Order[0] != "apt" {
		t.Fatalf("Order = %v", cfg.Managers.Order)
	}
}

func TestManagerOrderParsesKinds(t *testing.T) {
	cfg := Default()
	order := cfg.ManagerOrder()
	if len(order) != 3 {
		t.Fatalf("ManagerOrder = %v", order)
	}
	if order[0].String() != "winget" || order[1].String() != "choco" || order[2].String() != "scoop" {
		t.Fatalf("ManagerOrder = %v", order)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg, err := ParseConfig([]byte("[network]\ntimeout_seconds = 10\n"), "test")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Network.TimeoutSeconds != 10 {
		t.Fatalf("TimeoutSeconds = %d", cfg.Network.TimeoutSeconds)
	}
	if cfg.Network.Retries != 1 {
		t.Fatalf("Retries default = %d", cfg.Network.Retries)
	}
}
