package messages

// Archive extraction errors.
const (
	ExtractUnsupportedFormatFmt = "unsupported archive format: %s"
	ExtractOpenErrFmt           = "open archive %s: %w"
	ExtractEntryEscapesDestFmt  = "archive entry %q escapes the destination directory"
	ExtractWriteErrFmt          = "extract %s: %w"
)
