package config

import (
	"fmt"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
)

// Validate checks semantic constraints. source names the config origin
// for error messages.
func (c *Config) Validate(source string) error {
	seen := make(map[string]struct{}, len(c.Managers.Order))
	for _, name := range c.Managers.Order {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if _, err := pkgmgr.ParseKind(normalized); err != nil {
			return fmt.Errorf(messages.ConfigManagerUnknownFmt, source, name, strings.Join(pkgmgr.KindNames(), ", "))
		}
		if _, dup := seen[normalized]; dup {
			return fmt.Errorf(messages.ConfigManagerDuplicateFmt, source, name)
		}
		seen[normalized] = struct{}{}
	}
	if c.Network.TimeoutSeconds <= 0 {
		return fmt.Errorf(messages.ConfigTimeoutInvalidFmt, source)
	}
	if c.Network.Retries < 0 {
		return fmt.Errorf(messages.ConfigRetriesInvalidFmt, source)
	}
	return nil
}
