package messages

// GitHub release lookups.
const (
	GithubCreateRequestErrFmt   = "create github request: %w"
	GithubFetchReleaseErrFmt    = "fetch github release for %s: %w"
	GithubFetchReleaseStatusFmt = "fetch github release for %s: unexpected status %s"
	GithubDecodeReleaseErrFmt   = "decode github release for %s: %w"
	GithubReleaseMissingTag     = "github release response is missing tag_name"
	GithubNoMatchingAssetFmt    = "release %s has no asset matching %q"
)

// Artifact downloads.
const (
	DownloadCreateRequestErrFmt = "create download request for %s: %w"
	DownloadFetchErrFmt         = "download %s: %w"
	DownloadStatusFmt           = "download %s: unexpected status %s"
	DownloadCreateCacheErrFmt   = "create download cache %s: %w"
	DownloadWriteErrFmt         = "write download %s: %w"
	DownloadChecksumMismatch    = "downloaded file does not match its expected checksum"
	DownloadChecksumDetailFmt   = "%w: %s: got %s, want %s"
	DownloadSizeMismatchFmt     = "download %s: got %d bytes, want %d"
	DownloadEmptyURL            = "download URL is empty"
)
