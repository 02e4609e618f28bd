package messages

// Interactive menu messages.
const (
	// WizardRequiresTerminal is returned when a prompt is invoked without
	// an interactive terminal attached.
	WizardRequiresTerminal = "interactive terminal required (try 'devstrap install <tool>' for non-interactive use)"

	// MenuCategoryTitleFmt formats the per-category multi-select title.
	MenuCategoryTitleFmt = "Select %s to install"

	MenuManagerTitle = "Package manager preference"
	MenuManagerAuto  = "auto (configured order)"

	MenuSummaryTitle = "Ready to install"
	MenuSummaryFmt   = "Tools:\n%s\nManager: %s"

	MenuNothingSelectedTitle = "Nothing selected"
	MenuNothingSelectedBody  = "No tools were selected. Exiting without changes."

	// MenuConfirmInstallFmt asks for the final go-ahead.
	MenuConfirmInstallFmt = "Install %d tool(s) now?"

	// MenuExitPrompt confirms leaving the menu after Esc on the first step.
	MenuExitPrompt = "Exit without installing?"

	// MenuInstalledSuffixFmt annotates options already tracked in state.
	MenuInstalledSuffixFmt = " [installed %s]"

	// MenuNoChanges is printed when the menu exits without installing.
	MenuNoChanges = "No changes made."
)
