package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"

	ConfigManagerUnknownFmt   = "%s: managers.order contains unknown manager %q (allowed: %s)"
	ConfigManagerDuplicateFmt = "%s: managers.order lists %q more than once"
	ConfigTimeoutInvalidFmt   = "%s: network.timeout_seconds must be greater than zero"
	ConfigRetriesInvalidFmt   = "%s: network.retries must not be negative"

	// ConfigValidationGuidance is appended to validation errors to direct users to repair tools.
	ConfigValidationGuidance = "(run 'devstrap doctor' to diagnose)"

	ConfigPatchParseFailedFmt   = "config is not valid TOML: %v"
	ConfigPatchBadKeyFmt        = "config key %q must be section.key (for example managers.order)"
	ConfigPatchInvalidResultFmt = "setting %s produced invalid TOML: %v"
)
