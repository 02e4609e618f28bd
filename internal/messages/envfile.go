package messages

// Env exports file errors.
const (
	EnvfileLineErrorFmt            = "env exports line %d: %w"
	EnvfileReadFailedFmt           = "read env exports: %w"
	EnvfileExpectedKeyValue        = "expected KEY=value"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "unexpected content after quoted value"
)
