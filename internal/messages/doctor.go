package messages

// Doctor command surface.
const (
	DoctorUse   = "doctor"
	DoctorShort = "Check package managers, elevation, network, and devstrap state"

	DoctorHealthCheckFmt = "🏥 Checking machine health (devstrap home: %s)...\n"

	DoctorFailureSummary = "❌ Some checks failed. Please address the items above."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "✅ All systems go. devstrap is ready."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)

// Doctor check names.
const (
	DoctorCheckNameManagers  = "managers"
	DoctorCheckNameElevation = "elevation"
	DoctorCheckNameHome      = "home"
	DoctorCheckNameConfig    = "config"
	DoctorCheckNameState     = "state"
	DoctorCheckNamePath      = "path"
	DoctorCheckNameReboot    = "reboot"
	DoctorCheckNameWSL       = "wsl"
	DoctorCheckNameUpdate    = "update"
)

// Doctor check messages and recommendations.
const (
	DoctorManagerFoundFmt     = "%s is available"
	DoctorNoManagers          = "no package manager found on PATH"
	DoctorNoManagersRecommend = "Run 'devstrap bootstrap' to install winget, choco, or scoop."

	DoctorElevated           = "running with an administrator token"
	DoctorNotElevated        = "not running elevated"
	DoctorElevationRecommend = "Installers that need elevation will trigger a UAC prompt."

	DoctorHomeOKFmt            = "devstrap home at %s"
	DoctorHomeMissingFmt       = "devstrap home %s does not exist yet"
	DoctorHomeMissingRecommend = "It is created on the first install; no action needed."
	DoctorHomeNotDirFmt        = "devstrap home %s is not a directory"
	DoctorHomeNotDirRecommend  = "Move the file aside or point DEVSTRAP_HOME elsewhere."

	DoctorConfigOKFmt               = "config loaded from %s"
	DoctorConfigDefault             = "no config file; using defaults"
	DoctorConfigInvalidFmt          = "config is invalid: %v"
	DoctorConfigInvalidRecommend    = "Fix the reported fields in config.toml; devstrap falls back to safe values meanwhile."
	DoctorConfigUnreadableFmt       = "config could not be parsed: %v"
	DoctorConfigUnreadableRecommend = "Check config.toml for TOML syntax errors."

	DoctorStateOKFmt            = "state file tracks %d tool(s)"
	DoctorStateEmptyOK          = "no tools under management yet"
	DoctorStateCorruptFmt       = "state file is unreadable: %v"
	DoctorStateCorruptRecommend = "Delete state.json to start fresh; installed tools stay installed."

	DoctorPathOKFmt            = "%s is on PATH"
	DoctorPathMissingFmt       = "%s is not on PATH"
	DoctorPathMissingRecommend = "Add it to PATH so shims for downloaded tools resolve."

	DoctorNoRebootPending   = "no reboot pending"
	DoctorRebootPending     = "Windows has a reboot pending"
	DoctorRebootRecommend   = "Restart before installing more tools; installers may fail until then."
	DoctorRebootUnsupported = "reboot detection requires Windows"

	DoctorWSLOKFmt            = "wsl.exe available, %d distribution(s) installed"
	DoctorWSLNoDistros        = "wsl.exe available, no distributions installed"
	DoctorWSLMissing          = "wsl.exe not found on PATH"
	DoctorWSLMissingRecommend = "Run 'devstrap wsl install' to enable WSL and install a distribution."
	DoctorWSLUnsupported      = "WSL checks require Windows"

	DoctorUpToDateFmt               = "devstrap %s is the latest release"
	DoctorUpdateAvailableFmt        = "newer devstrap available: %s (current %s)"
	DoctorUpdateAvailableRecommend  = "Download it from https://github.com/beaconworks/devstrap/releases"
	DoctorUpdateDevBuildFmt         = "running a dev build; latest release is %s"
	DoctorUpdateRateLimited         = "release check skipped: GitHub API rate limit reached"
	DoctorUpdateFailedFmt           = "release check failed: %v"
	DoctorUpdateFailedRecommend     = "Check network connectivity; installs from vendor URLs may also fail."
	DoctorUpdateSkippedFmt          = "release check skipped (%s is set)"
	DoctorUpdateSkippedRecommendFmt = "Unset %s to re-enable release checks."
)
