package messages

// Profile loading and patching messages.
const (
	ProfileResolveStartErrFmt = "resolve start directory %s: %w"
	ProfileIsDirectoryFmt     = "profile path %s is a directory"
	ProfileStatErrFmt         = "stat %s: %w"

	ProfileEmptyFmt    = "profile %s is empty"
	ProfileParseErrFmt = "parse profile %s: %w"
	ProfileReadErrFmt  = "read profile %s: %w"

	ProfileEntryFieldBoolFmt    = "tool entry field %q must be a boolean: %w"
	ProfileEntryFieldUnknownFmt = "unknown tool entry field %q (allowed: id, version, manager, skip)"
	ProfileEntryMissingID       = "tool entry is missing required field \"id\""
	ProfileEntryBadNode         = "tool entry must be a string or a mapping"

	ProfilePatchParseErrFmt  = "parse profile: %w"
	ProfilePatchRenderErrFmt = "render profile: %w"
)
