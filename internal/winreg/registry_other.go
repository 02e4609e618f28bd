//go:build !windows

package winreg

// InstalledProducts is Windows-only.
func InstalledProducts() ([]Product, error) {
	return nil, ErrUnsupported
}

// ServiceExists is Windows-only.
func ServiceExists(name string) (bool, error) {
	return false, ErrUnsupported
}

// SetManagedInstall is Windows-only.
func SetManagedInstall(id string, name string, version string) error {
	return ErrUnsupported
}

// DeleteManagedInstall is Windows-only.
func DeleteManagedInstall(id string) error {
	return ErrUnsupported
}

// PendingReboot is Windows-only.
func PendingReboot() (bool, error) {
	return false, ErrUnsupported
}

// ManagedInstalls is Windows-only.
func ManagedInstalls() (map[string]ManagedInstall, error) {
	return nil, ErrUnsupported
}
