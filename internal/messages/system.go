// Package messages centralizes user-facing strings for devstrap.
package messages

// Filesystem, paths, and process execution messages.
const (
	PathsResolveHomeErrFmt = "resolve home directory: %w"
	PathsCreateDirErrFmt   = "create directory %s: %w"

	ExecCommandFailedFmt       = "%s failed: %w"
	ExecCommandFailedStderrFmt = "%s failed: %w: %s"
	ExecPowerShellNotFound     = "no PowerShell executable found on PATH (tried pwsh, powershell)"

	SystemReadFileErrFmt   = "read %s: %w"
	SystemWriteFileErrFmt  = "write %s: %w"
	SystemCreateDirErrFmt  = "create directory %s: %w"
	SystemRemoveErrFmt     = "remove %s: %w"
	SystemUnsupportedOSFmt = "%s requires Windows (current platform: %s)"

	FsutilTempCreateErrFmt = "create temp file for %s: %w"
	FsutilTempWriteErrFmt  = "write temp file for %s: %w"
	FsutilTempChmodErrFmt  = "chmod temp file for %s: %w"
	FsutilTempCloseErrFmt  = "close temp file for %s: %w"
	FsutilTempRenameErrFmt = "rename temp file to %s: %w"

	StateReadErrFmt      = "read state file %s: %w"
	StateDecodeErrFmt    = "decode state file %s: %w"
	StateEncodeErrFmt    = "encode state file %s: %w"
	StateCreateDirErrFmt = "create state directory %s: %w"
	StateWriteErrFmt     = "write state file %s: %w"
)
