package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "devstrap"
	// RootShort is the short description for the root command.
	RootShort       = "Developer machine bootstrapper"
	RootLong        = "devstrap installs and manages developer tools on Windows through winget, Chocolatey, Scoop, or direct downloads."
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
	VersionUse       = "version"
	VersionShort     = "Print the devstrap version"

	// ListUse is the list command name.
	ListUse            = "list"
	ListShort          = "List catalog tools with install status"
	ListHeaderFmt      = "%-16s %-24s %-12s %s\n"
	ListHeaderID       = "ID"
	ListHeaderName     = "NAME"
	ListHeaderCat      = "CATEGORY"
	ListHeaderVer      = "INSTALLED"
	ListNotInstalled   = "-"
	ListVersionUnknown = "installed"

	// InstallUse is the install command usage.
	InstallUse   = "install <tool>..."
	InstallShort = "Install one or more tools from the catalog"

	InstallFlagVersion = "Pin a specific version (single tool only)"
	InstallFlagForce   = "Reinstall even when the tool is already present"
	InstallFlagSilent  = "Suppress installer UI (overrides config)"
	InstallFlagManager = "Prefer a package manager: winget, choco, or scoop"
	InstallFlagDryRun  = "Show what would be installed without changing anything"
	InstallFlagSkip    = "Skip a tool by id (repeatable)"

	InstallVersionNeedsOneTool = "--version applies to a single tool; got %d"
	InstallNothingToDo         = "nothing to install"
	InstallDryRunHeader        = "Plan:"
	InstallDryRunLineFmt       = "  %-16s %-8s %s\n"

	// UninstallUse is the uninstall command usage.
	UninstallUse   = "uninstall <tool>..."
	UninstallShort = "Remove tools that devstrap installed"

	// UpgradeUse is the upgrade command usage.
	UpgradeUse            = "upgrade [tool]..."
	UpgradeShort          = "Upgrade installed tools to their latest versions"
	UpgradeFlagAll        = "Upgrade every tool devstrap tracks"
	UpgradeNothingTracked = "no tools under management; run 'devstrap install <tool>' first"
	UpgradeNeedsArgsOrAll = "name tools to upgrade or pass --all"

	// MenuUse is the menu command name.
	MenuUse   = "menu"
	MenuShort = "Pick tools to install from an interactive menu"

	// ApplyUse is the apply command usage.
	ApplyUse               = "apply [profile]"
	ApplyShort             = "Reconcile this machine against a profile"
	ApplyFlagUpgrade       = "Also upgrade tools the profile wants newer"
	ApplyNoProfileFmt      = "no %s found here or in any parent directory"
	ApplyProfileFmt        = "Applying %s\n"
	ApplyInvalidProfileFmt = "profile %s is invalid:\n%s"
	ApplyFindingLineFmt    = "  [%s] %s %s: %s"

	ApplyWSLRegistered        = "registered"
	ApplyWSLAlreadyRegistered = "already registered"

	// DiffUse is the diff command usage.
	DiffUse       = "diff [profile]"
	DiffShort     = "Preview the drift between this machine and a profile"
	DiffNoChanges = "machine matches profile"

	// ProfileUse is the profile command group name.
	ProfileUse   = "profile"
	ProfileShort = "Manage the declarative machine profile"

	ProfileAddUse     = "add <tool>..."
	ProfileAddShort   = "Add tools to the nearest profile, creating one if needed"
	ProfileAddDoneFmt = "updated %s\n"
	ProfileAddNoop    = "profile already selects those tools"

	// BootstrapUse is the bootstrap command usage.
	BootstrapUse        = "bootstrap [manager]"
	BootstrapShort      = "Install the package managers themselves"
	BootstrapAllPresent = "all package managers are already available"
	BootstrapDoneFmt    = "%s is ready\n"
	BootstrapSkipFmt    = "%s already available, skipping\n"

	// WSLUse is the wsl command group name.
	WSLUse   = "wsl"
	WSLShort = "Provision Windows Subsystem for Linux distributions"

	WSLListUse         = "list"
	WSLListShort       = "List installed WSL distributions"
	WSLListNone        = "no WSL distributions installed"
	WSLListHeaderFmt   = "%-24s %-12s %s\n"
	WSLListHeaderName  = "NAME"
	WSLListHeaderState = "STATE"
	WSLListHeaderVer   = "VERSION"
	WSLListDefaultMark = " (default)"

	WSLInstallUse     = "install [distro]"
	WSLInstallShort   = "Enable WSL and install a distribution"
	WSLInstallDoneFmt = "%s installed\n"

	WSLRemoveUse     = "remove <distro>"
	WSLRemoveShort   = "Unregister a WSL distribution"
	WSLRemoveDoneFmt = "%s unregistered\n"

	// EnvUse is the env command group name.
	EnvUse   = "env"
	EnvShort = "Show or edit the recorded environment exports"

	EnvShowUse        = "show"
	EnvShowShort      = "Print the exports file as shell statements"
	EnvFlagPowerShell = "Render PowerShell syntax instead of POSIX"
	EnvEmpty          = "no environment exports recorded"

	EnvSetUse     = "set <key> <value>"
	EnvSetShort   = "Record an environment export"
	EnvSetDoneFmt = "set %s\n"

	EnvUnsetUse     = "unset <key>"
	EnvUnsetShort   = "Remove a recorded environment export"
	EnvUnsetDoneFmt = "removed %s\n"

	// ConfigUse is the config command group name.
	ConfigUse   = "config"
	ConfigShort = "Show or edit devstrap configuration"

	ConfigShowUse   = "show"
	ConfigShowShort = "Print the effective configuration"
	ConfigShowFmt   = "manager order:  %s\ntimeout:        %s\nretries:        %d\nsilent:         %t\nshortcuts:      %t\ndefault distro: %s\n"

	ConfigSetUse     = "set <section.key> <value>"
	ConfigSetShort   = "Set a config value, preserving comments"
	ConfigSetDoneFmt = "updated %s\n"

	ConfigPathUse   = "path"
	ConfigPathShort = "Print the config file location"

	// RunAbortedFmt reports a cancelled run before the summary prints.
	RunAbortedFmt = "aborted: %v\n"
)
