// Package catalog defines the static registry of developer tools devstrap
// knows how to detect, install, and remove on Windows machines.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

// ErrNotInCatalog reports a tool ID that is not part of the builtin catalog.
var ErrNotInCatalog = errors.New(messages.CatalogToolUnknown)

// InstallerKind describes how a downloaded artifact is installed.
type InstallerKind string

const (
	// InstallerMSI is a Windows Installer package run through msiexec.
	InstallerMSI InstallerKind = "msi"
	// InstallerEXE is a vendor setup executable run with silent arguments.
	InstallerEXE InstallerKind = "exe"
	// InstallerZip is an archive extracted under the devstrap tools directory.
	InstallerZip InstallerKind = "zip"
	// InstallerAppx is an MSIX/AppX bundle registered via Add-AppxPackage.
	InstallerAppx InstallerKind = "appx"
	// InstallerBin is a standalone executable placed on the devstrap bin directory.
	InstallerBin InstallerKind = "bin"
)

// Tool categories used for grouping in listings and the interactive menu.
const (
	CategoryVCS       = "vcs"
	CategoryRuntimes  = "runtimes"
	CategoryDatabases = "databases"
	CategoryCloud     = "cloud"
	CategoryEditors   = "editors"
	CategoryBrowsers  = "browsers"
	CategoryUtilities = "utilities"
)

// Download describes a direct-download fallback for a tool.
type Download struct {
	// URL is the artifact location. It may contain {version} and {arch}
	// placeholders resolved at download time.
	URL string
	// Kind selects the installation strategy for the fetched artifact.
	Kind InstallerKind
	// SilentArgs are passed to msi/exe installers for unattended runs.
	SilentArgs []string
	// SHA256 is an optional hex digest checked after download.
	SHA256 string
	// GitHubRepo ("owner/name") resolves {version} from the latest release
	// when no explicit version is requested.
	GitHubRepo string
	// AssetPattern matches a release asset name when GitHubRepo is set.
	AssetPattern string
}

// ResolveURL substitutes the {version} and {arch} placeholders.
func (d Download) ResolveURL(version string, arch string) string {
	url := strings.ReplaceAll(d.URL, "{version}", version)
	return strings.ReplaceAll(url, "{arch}", arch)
}

// Tool is a single catalog entry.
type Tool struct {
	// ID is the stable lowercase identifier used on the command line.
	ID string
	// Name is the human-readable display name.
	Name string
	// Category groups the tool in listings.
	Category string

	// CheckCommand is the executable probed to detect an existing install.
	// Empty means the tool has no CLI and is detected through the registry.
	CheckCommand string
	// VersionArgs are passed to CheckCommand to print a version string.
	VersionArgs []string
	// VersionPattern overrides the default version extraction regexp.
	VersionPattern string

	// Package manager identifiers. Empty means the manager cannot install
	// this tool.
	WingetID string
	ChocoID  string
	ScoopID  string

	// Download is the direct-download fallback when no manager is available.
	Download *Download

	// RegistryNames are display-name fragments matched against the Windows
	// uninstall registry keys.
	RegistryNames []string
	// ServiceName is a Windows service installed alongside the tool.
	ServiceName string

	// Env lists environment variables exported after installation.
	Env map[string]string

	// RequiresElevation marks installers that need an administrator token.
	RequiresElevation bool

	Notes string
}

// Installable reports whether at least one installation method exists.
func (t Tool) Installable() bool {
	return t.WingetID != "" || t.ChocoID != "" || t.ScoopID != "" || t.Download != nil
}

// ManagerID returns the package identifier for the named manager, or "".
func (t Tool) ManagerID(manager string) string {
	switch manager {
	case "winget":
		return t.WingetID
	case "choco":
		return t.ChocoID
	case "scoop":
		return t.ScoopID
	}
	return ""
}

// Builtin returns the builtin tool catalog in category order.
func Builtin() []Tool {
	out := make([]Tool, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup finds a tool by ID. IDs are matched case-insensitively.
func Lookup(id string) (Tool, error) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	for _, tool := range builtin {
		if tool.ID == normalized {
			return tool, nil
		}
	}
	return Tool{}, fmt.Errorf(messages.CatalogUnknownToolFmt, id, ErrNotInCatalog)
}

// IDs returns all catalog tool IDs sorted alphabetically.
func IDs() []string {
	ids := make([]string, 0, len(builtin))
	for _, tool := range builtin {
		ids = append(ids, tool.ID)
	}
	sort.Strings(ids)
	return ids
}

// Categories returns the distinct categories present in the catalog, sorted.
func Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tool := range builtin {
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		out = append(out, tool.Category)
	}
	sort.Strings(out)
	return out
}

// InCategory returns the tools in the given category in catalog order.
func InCategory(category string) []Tool {
	out := make([]Tool, 0)
	for _, tool := range builtin {
		if tool.Category == category {
			out = append(out, tool)
		}
	}
	return out
}
