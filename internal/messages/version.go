package messages

// Version parsing and comparison messages.
const (
	VersionInvalidFmt        = "invalid version %q"
	VersionInvalidSegmentFmt = "invalid version segment %q: %w"
)
