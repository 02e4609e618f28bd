package messages

// Install pipeline messages.
const (
	InstallNoMethodFmt        = "no install method for %s: %w"
	InstallNoManager          = "no usable package manager offers it and it has no direct download"
	InstallVersionRequiredFmt = "%s needs an explicit version for direct download (no release feed to resolve latest)"

	InstallAlreadyInstalled    = "already installed"
	InstallAlreadyInstalledFmt = "already installed (%s)"
	InstallNotInstalled        = "not installed"
	InstallUpToDateFmt         = "up to date (%s)"
	InstallDetailViaFmt        = "%s via %s"
	InstallDetailViaOnlyFmt    = "via %s"
	InstallRebootRequired      = "reboot required to finish"
	InstallUnpackedToFmt       = "unpacked to %s"

	InstallResolveDownloadErrFmt = "resolve download for %s: %w"
	InstallRunInstallerErrFmt    = "run installer for %s: %w"
	InstallUnpackErrFmt          = "unpack %s: %w"
	InstallPlaceBinaryErrFmt     = "place binary for %s: %w"
	InstallEnvErrFmt             = "update env exports for %s: %w"
	InstallRecordStateErrFmt     = "record install state for %s: %w"
	InstallRemoveErrFmt          = "remove %s: %w"
	InstallUnknownKindFmt        = "unknown installer kind %q for %s"
	InstallUnknownMethodFmt      = "unknown install method %q recorded for %s"
	InstallNotManagedFmt         = "%s was not installed by devstrap; remove it through its own uninstaller"

	InstallShortcutFailedFmt = "warning: shortcut for %s failed: %v"
	InstallStateLoadWarnFmt  = "warning: state file unreadable, treating all tools as untracked: %v"
)
