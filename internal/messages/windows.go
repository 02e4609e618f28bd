package messages

// Windows-only surface errors.
const (
	WinregUnsupported        = "registry access requires Windows"
	ElevateRelaunched        = "execution handed off to an elevated process"
	ElevateStillUnprivileged = "process is not elevated despite DEVSTRAP_ELEVATED; refusing to relaunch again"
	ElevateRelaunchFailedFmt = "elevated relaunch failed: %w"
	ElevateResolveExeFmt     = "resolve current executable: %w"
	ElevateUnsupportedFmt    = "elevation requires Windows (current platform: %s)"
)
