// Package pkgmgr abstracts the package managers devstrap drives:
// Winget, Chocolatey, and Scoop. Each manager is an adapter over its CLI;
// a small registry lets callers resolve adapters by kind or preference
// order without knowing which are compiled in.
package pkgmgr

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -linecomment

// Kind identifies a supported package manager.
type Kind int

const (
	Winget Kind = iota // winget
	Choco              // choco
	Scoop              // scoop
)

// Request names a package operation for a manager.
type Request struct {
	// ID is the manager-specific package identifier.
	ID string
	// Version pins a specific version when non-empty.
	Version string
	// Force reinstalls over an existing installation.
	Force bool
}

// Options configures adapter construction.
type Options struct {
	// Stdout receives streamed manager output. Defaults to io.Discard.
	Stdout io.Writer
	// Stderr receives streamed manager errors. Defaults to io.Discard.
	Stderr io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return io.Discard
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return io.Discard
	}
	return o.Stderr
}

// Manager installs software through one package manager CLI.
type Manager interface {
	Kind() Kind
	// Detect reports whether the manager is usable on this machine.
	Detect() bool
	// Install installs the requested package.
	Install(ctx context.Context, req Request) error
	// Uninstall removes the requested package.
	Uninstall(ctx context.Context, req Request) error
	// Upgrade moves the requested package to its latest version.
	Upgrade(ctx context.Context, req Request) error
	// InstalledVersion returns the version the manager reports for the
	// package, or "" when the manager does not have it installed.
	InstalledVersion(ctx context.Context, req Request) (string, error)
}

// Factory constructs a manager adapter.
type Factory func(opts Options) Manager

var registry = map[Kind]Factory{}

// Register installs a factory for kind. Adapters register themselves at
// package init.
func Register(kind Kind, factory Factory) {
	registry[kind] = factory
}

// New returns the adapter for kind.
func New(kind Kind, opts Options) (Manager, error) {
	factory, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf(messages.ManagerNotRegisteredFmt, kind)
	}
	return factory(opts), nil
}

// Kinds returns the registered manager kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// KindNames returns the registered manager names in declaration order.
func KindNames() []string {
	kinds := Kinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return names
}

// ParseKind resolves a manager name such as "winget" to its Kind.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, kind := range Kinds() {
		if kind.String() == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf(messages.ManagerUnknownFmt, name, strings.Join(KindNames(), ", "))
}

// Detect returns the first usable manager in order. The boolean reports
// whether any manager was found.
func Detect(opts Options, order []Kind) (Manager, bool) {
	for _, kind := range order {
		mgr, err := New(kind, opts)
		if err != nil {
			continue
		}
		if mgr.Detect() {
			return mgr, true
		}
	}
	return nil, false
}

// DetectAll returns every registered manager that is usable on this
// machine, in declaration order.
func DetectAll(opts Options) []Manager {
	var found []Manager
	for _, kind := range Kinds() {
		mgr, err := New(kind, opts)
		if err != nil {
			continue
		}
		if mgr.Detect() {
			found = append(found, mgr)
		}
	}
	return found
}
