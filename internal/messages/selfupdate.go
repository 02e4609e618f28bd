package messages

// Release checks against GitHub and the resulting warnings.
const (
	UpdateInvalidCurrentVersionFmt = "invalid current version %q: %w"
	UpdateInvalidLatestReleaseFmt  = "invalid latest release tag %q"
	UpdateFetchLatestReleaseErrFmt = "fetch latest release: %w"

	WarnUpdateCheckFailedFmt = "Warning: failed to check for updates: %v\n"
	WarnDevBuildFmt          = "Warning: running dev build; latest release is %s\n"
	WarnUpdateAvailableFmt   = "Warning: update available: %s (current %s)\nDownload: %s\n"
)
