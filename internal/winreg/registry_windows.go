//go:build windows

package winreg

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sys/windows/registry"
)

const (
	uninstallPath  = `Software\Microsoft\Windows\CurrentVersion\Uninstall`
	managedPath    = `Software\Devstrap\Installs`
	servicesPath   = `SYSTEM\CurrentControlSet\Services`
	nameValue      = "DisplayName"
	versionValue   = "DisplayVersion"
	publisherValue = "Publisher"
	uninstallValue = "UninstallString"
)

// uninstallRoots covers 64-bit and 32-bit machine installs plus
// per-user installs.
var uninstallRoots = []struct {
	key    registry.Key
	access uint32
}{
	{registry.LOCAL_MACHINE, registry.WOW64_64KEY},
	{registry.LOCAL_MACHINE, registry.WOW64_32KEY},
	{registry.CURRENT_USER, 0},
}

// InstalledProducts lists every uninstall entry with a display name,
// deduplicated by name and version.
func InstalledProducts() ([]Product, error) {
	seen := make(map[string]struct{})
	out := make([]Product, 0)

	for _, root := range uninstallRoots {
		key, err := registry.OpenKey(root.key, uninstallPath, registry.READ|registry.ENUMERATE_SUB_KEYS|root.access)
		if err != nil {
			continue
		}
		names, err := key.ReadSubKeyNames(-1)
		if err != nil {
			key.Close()
			continue
		}
		for _, name := range names {
			sub, err := registry.OpenKey(root.key, uninstallPath+`\`+name, registry.QUERY_VALUE|root.access)
			if err != nil {
				continue
			}
			product, ok := readProduct(sub)
			sub.Close()
			if !ok {
				continue
			}
			dedupe := product.DisplayName + "|" + product.DisplayVersion
			if _, dup := seen[dedupe]; dup {
				continue
			}
			seen[dedupe] = struct{}{}
			out = append(out, product)
		}
		key.Close()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func readProduct(key registry.Key) (Product, bool) {
	display, _, err := key.GetStringValue(nameValue)
	if err != nil || display == "" {
		return Product{}, false
	}
	version, _, _ := key.GetStringValue(versionValue)
	publisher, _, _ := key.GetStringValue(publisherValue)
	uninstall, _, _ := key.GetStringValue(uninstallValue)
	return Product{
		DisplayName:     display,
		DisplayVersion:  version,
		Publisher:       publisher,
		UninstallString: uninstall,
	}, true
}

// ServiceExists reports whether a Windows service is registered.
func ServiceExists(name string) (bool, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, servicesPath+`\`+name, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open service key %s: %w", name, err)
	}
	key.Close()
	return true, nil
}

// SetManagedInstall mirrors a devstrap install under the managed key.
func SetManagedInstall(id string, name string, version string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, managedPath+`\`+id, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create managed key for %s: %w", id, err)
	}
	defer key.Close()
	if err := key.SetStringValue(nameValue, name); err != nil {
		return fmt.Errorf("write managed name for %s: %w", id, err)
	}
	if err := key.SetStringValue(versionValue, version); err != nil {
		return fmt.Errorf("write managed version for %s: %w", id, err)
	}
	return nil
}

// DeleteManagedInstall removes a tool from the managed key. Missing
// entries are not an error.
func DeleteManagedInstall(id string) error {
	err := registry.DeleteKey(registry.CURRENT_USER, managedPath+`\`+id)
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("delete managed key for %s: %w", id, err)
	}
	return nil
}

// rebootPendingPaths are keys whose presence means Windows wants a
// restart before more installs land cleanly.
var rebootPendingPaths = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Component Based Servicing\RebootPending`,
	`SOFTWARE\Microsoft\Windows\CurrentVersion\WindowsUpdate\Auto Update\RebootRequired`,
}

// PendingReboot reports whether the servicing stack or Windows Update
// left a restart pending.
func PendingReboot() (bool, error) {
	for _, path := range rebootPendingPaths {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE|registry.WOW64_64KEY)
		if err == nil {
			key.Close()
			return true, nil
		}
		if !errors.Is(err, registry.ErrNotExist) {
			return false, fmt.Errorf("open reboot-pending key %s: %w", path, err)
		}
	}
	return false, nil
}

// ManagedInstalls lists the tools recorded under the managed key.
func ManagedInstalls() (map[string]ManagedInstall, error) {
	out := make(map[string]ManagedInstall)
	key, err := registry.OpenKey(registry.CURRENT_USER, managedPath, registry.READ|registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("open managed key: %w", err)
	}
	defer key.Close()

	ids, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("list managed installs: %w", err)
	}
	for _, id := range ids {
		sub, err := registry.OpenKey(registry.CURRENT_USER, managedPath+`\`+id, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		name, _, _ := sub.GetStringValue(nameValue)
		version, _, _ := sub.GetStringValue(versionValue)
		sub.Close()
		out[id] = ManagedInstall{DisplayName: name, DisplayVersion: version}
	}
	return out, nil
}
