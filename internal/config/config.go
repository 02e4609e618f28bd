// Package config loads and validates devstrap's config.toml.
package config

import (
	"time"

	"github.com/beaconworks/devstrap/internal/pkgmgr"
)

// Config is the devstrap configuration. Every section is optional;
// missing values fall back to defaults.
type Config struct {
	Managers ManagersConfig `toml:"managers"`
	Network  NetworkConfig  `toml:"network"`
	Install  InstallConfig  `toml:"install"`
	WSL      WSLConfig      `toml:"wsl"`
}

// ManagersConfig controls package manager selection.
type ManagersConfig struct {
	// Order is the preference order used when no manager is requested
	// explicitly. Entries are manager names: winget, choco, scoop.
	Order []string `toml:"order"`
}

// NetworkConfig controls download behavior.
type NetworkConfig struct {
	// TimeoutSeconds bounds each download request.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Retries is how many times transient download failures are retried.
	Retries int `toml:"retries"`
}

// InstallConfig controls installer invocation defaults.
type InstallConfig struct {
	// Silent suppresses installer UI. Defaults to true.
	Silent *bool `toml:"silent"`
	// Shortcuts creates Start Menu shortcuts after direct installs.
	// Defaults to false.
	Shortcuts *bool `toml:"shortcuts"`
}

// WSLConfig controls WSL provisioning defaults.
type WSLConfig struct {
	// DefaultDistro is installed when no distribution is named.
	DefaultDistro string `toml:"default_distro"`
}

const (
	defaultTimeoutSeconds = 300
	defaultRetries        = 1
	defaultDistro         = "Ubuntu"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero values in place after parsing.
func (c *Config) applyDefaults() {
	if len(c.Managers.Order) == 0 {
		c.Managers.Order = []string{"winget", "choco", "scoop"}
	}
	if c.Network.TimeoutSeconds == 0 {
		c.Network.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Network.Retries == 0 {
		c.Network.Retries = defaultRetries
	}
	if c.WSL.DefaultDistro == "" {
		c.WSL.DefaultDistro = defaultDistro
	}
}

// SilentDefault reports whether installers run silently by default.
func (c *Config) SilentDefault() bool {
	return c.Install.Silent == nil || *c.Install.Silent
}

// ShortcutsEnabled reports whether direct installs create shortcuts.
func (c *Config) ShortcutsEnabled() bool {
	return c.Install.Shortcuts != nil && *c.Install.Shortcuts
}

// Timeout returns the per-download timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Network.TimeoutSeconds) * time.Second
}

// ManagerOrder returns the configured preference order as manager kinds.
// Validation guarantees the names parse, so unknown entries are skipped.
func (c *Config) ManagerOrder() []pkgmgr.Kind {
	order := make([]pkgmgr.Kind, 0, len(c.Managers.Order))
	for _, name := range c.Managers.Order {
		kind, err := pkgmgr.ParseKind(name)
		if err != nil {
			continue
		}
		order = append(order, kind)
	}
	return order
}
