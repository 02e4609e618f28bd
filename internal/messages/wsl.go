package messages

// Windows Subsystem for Linux messages.
const (
	WSLNotAvailable           = "wsl.exe is not available on PATH"
	WSLListFailedFmt          = "list wsl distributions: %w"
	WSLInstallFailedFmt       = "install wsl distribution %s: %w"
	WSLUnregisterFailedFmt    = "unregister wsl distribution %s: %w"
	WSLSetDefaultFailedFmt    = "set default wsl distribution %s: %w"
	WSLEnableFeatureFailedFmt = "enable windows feature %s: %w"
	WSLRebootRequired         = "a reboot is required to finish enabling Windows features"
)
