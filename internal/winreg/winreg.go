// Package winreg reads the Windows uninstall registry and maintains the
// devstrap managed-installs key. All registry access is Windows-only;
// other platforms get ErrUnsupported.
package winreg

import (
	"errors"
	"sort"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

// ErrUnsupported reports registry access on a non-Windows platform.
var ErrUnsupported = errors.New(messages.WinregUnsupported)

// Product is one entry from the uninstall registry keys.
type Product struct {
	DisplayName     string
	DisplayVersion  string
	Publisher       string
	UninstallString string
}

// ManagedInstall is one entry under the devstrap managed-installs key.
type ManagedInstall struct {
	DisplayName    string
	DisplayVersion string
}

// MatchProducts returns the products whose display name contains any of
// the fragments, case-insensitively, sorted by display name.
func MatchProducts(products []Product, fragments []string) []Product {
	out := make([]Product, 0)
	for _, product := range products {
		name := strings.ToLower(product.DisplayName)
		for _, fragment := range fragments {
			if fragment == "" {
				continue
			}
			if strings.Contains(name, strings.ToLower(fragment)) {
				out = append(out, product)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// FindProducts lists installed products matching the name fragments.
func FindProducts(fragments []string) ([]Product, error) {
	products, err := InstalledProducts()
	if err != nil {
		return nil, err
	}
	return MatchProducts(products, fragments), nil
}
