package messages

// Package manager messages.
const (
	ManagerUnknownFmt         = "unknown package manager %q (allowed: %s)"
	ManagerNotRegisteredFmt   = "package manager %s is not registered"
	ManagerBootstrapFailedFmt = "bootstrap %s: %w"

	ScriptsReadErrFmt     = "read embedded script %s: %w"
	ScriptsNoBootstrapFmt = "no bootstrap script for %q"
)
