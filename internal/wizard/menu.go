// Package wizard implements the interactive tool picker behind
// `devstrap menu`. It walks one multi-select step per catalog category,
// asks for a package manager preference, shows a summary, and hands the
// confirmed selections back to the caller for the sequential install
// pipeline. Esc steps back, Ctrl+C aborts without changes.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/state"
)

var (
	errWizardBack      = errors.New("menu back requested")
	errWizardCancelled = errors.New("menu cancelled")
)

// categoryTitles maps catalog categories to menu headings.
var categoryTitles = map[string]string{
	catalog.CategoryVCS:       "version control",
	catalog.CategoryRuntimes:  "languages & runtimes",
	catalog.CategoryDatabases: "databases",
	catalog.CategoryCloud:     "cloud CLIs",
	catalog.CategoryEditors:   "editors & IDEs",
	catalog.CategoryBrowsers:  "browsers",
	catalog.CategoryUtilities: "utilities",
}

func categoryTitle(category string) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	return category
}

// managerOptions in menu display order. The first entry means "no
// override": the configured manager order decides per tool.
var managerOptions = []string{messages.MenuManagerAuto, "winget", "choco", "scoop"}

// Run drives the menu and returns the confirmed selections in catalog
// order. A nil slice with a nil error means the user backed out or
// cancelled; the caller prints the no-changes notice.
func Run(ui UI, installed state.State) ([]profile.Selection, error) {
	choices := NewChoices()
	if err := stepLoop(ui, installed, choices); err != nil {
		if errors.Is(err, errWizardBack) || errors.Is(err, errWizardCancelled) {
			return nil, nil
		}
		return nil, err
	}
	if choices.Count() == 0 {
		return nil, nil
	}
	return buildSelections(choices), nil
}

// stepLoop walks the menu steps with snapshot-based back navigation:
// category pages, manager preference, then summary + confirm. Esc on the
// first step asks whether to exit; Esc later restores the previous
// snapshot and steps back.
func stepLoop(ui UI, installed state.State, choices *Choices) error {
	categories := menuCategories()
	confirmStep := len(categories) + 1

	step := 0
	for {
		snapshot := choices.Clone()
		var err error

		switch {
		case step < len(categories):
			err = promptCategory(ui, categories[step], installed, choices)
		case step == len(categories):
			err = promptManager(ui, choices)
		default:
			err = promptConfirm(ui, choices)
		}

		if err == nil {
			if step == confirmStep {
				return nil
			}
			step++
			continue
		}
		if !errors.Is(err, errWizardBack) {
			return err
		}

		*choices = *snapshot

		if step == 0 {
			exit, confirmErr := confirmExitOnFirstStepEscape(ui)
			if confirmErr != nil {
				return confirmErr
			}
			if exit {
				return errWizardCancelled
			}
			continue
		}
		step--
	}
}

// menuCategories returns the catalog categories that contain at least one
// installable tool, in catalog declaration order.
func menuCategories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tool := range catalog.Builtin() {
		if !tool.Installable() {
			continue
		}
		if _, ok := seen[tool.Category]; ok {
			continue
		}
		seen[tool.Category] = struct{}{}
		out = append(out, tool.Category)
	}
	return out
}

func promptCategory(ui UI, category string, installed state.State, choices *Choices) error {
	tools := make([]catalog.Tool, 0)
	for _, tool := range catalog.InCategory(category) {
		if tool.Installable() {
			tools = append(tools, tool)
		}
	}

	labels := make([]string, 0, len(tools))
	idByLabel := make(map[string]string, len(tools))
	selected := make([]string, 0)
	for _, tool := range tools {
		label := optionLabel(tool, installed)
		labels = append(labels, label)
		idByLabel[label] = tool.ID
		if choices.Selected[tool.ID] {
			selected = append(selected, label)
		}
	}

	title := fmt.Sprintf(messages.MenuCategoryTitleFmt, categoryTitle(category))
	if err := ui.MultiSelect(title, labels, &selected); err != nil {
		return err
	}

	for _, tool := range tools {
		choices.Selected[tool.ID] = false
	}
	for _, label := range selected {
		if id, ok := idByLabel[label]; ok {
			choices.Selected[id] = true
		}
	}
	return nil
}

// optionLabel renders "Name (id)" with the recorded version appended when
// devstrap already manages the tool.
func optionLabel(tool catalog.Tool, installed state.State) string {
	label := fmt.Sprintf("%s (%s)", tool.Name, tool.ID)
	if record, ok := installed.Get(tool.ID); ok && record.Version != "" {
		label += fmt.Sprintf(messages.MenuInstalledSuffixFmt, record.Version)
	}
	return label
}

func promptManager(ui UI, choices *Choices) error {
	current := messages.MenuManagerAuto
	if choices.Manager != "" {
		current = choices.Manager
	}
	if err := ui.Select(messages.MenuManagerTitle, managerOptions, &current); err != nil {
		return err
	}
	if current == messages.MenuManagerAuto {
		choices.Manager = ""
	} else {
		choices.Manager = current
	}
	return nil
}

func promptConfirm(ui UI, choices *Choices) error {
	if choices.Count() == 0 {
		return ui.Note(messages.MenuNothingSelectedTitle, messages.MenuNothingSelectedBody)
	}
	if err := ui.Note(messages.MenuSummaryTitle, buildSummary(choices)); err != nil {
		return err
	}
	proceed := true
	if err := ui.Confirm(fmt.Sprintf(messages.MenuConfirmInstallFmt, choices.Count()), &proceed); err != nil {
		return err
	}
	if !proceed {
		return errWizardCancelled
	}
	return nil
}

func confirmExitOnFirstStepEscape(ui UI) (bool, error) {
	exit := true
	if err := ui.Confirm(messages.MenuExitPrompt, &exit); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return exit, nil
}

func buildSummary(choices *Choices) string {
	var lines []string
	for _, tool := range catalog.Builtin() {
		if choices.Selected[tool.ID] {
			lines = append(lines, fmt.Sprintf("  - %s (%s)", tool.Name, tool.ID))
		}
	}
	manager := choices.Manager
	if manager == "" {
		manager = messages.MenuManagerAuto
	}
	return fmt.Sprintf(messages.MenuSummaryFmt, strings.Join(lines, "\n"), manager)
}

// buildSelections returns the picked tools in catalog order so the
// install pipeline runs them in a stable sequence.
func buildSelections(choices *Choices) []profile.Selection {
	out := make([]profile.Selection, 0, choices.Count())
	for _, tool := range catalog.Builtin() {
		if !choices.Selected[tool.ID] {
			continue
		}
		out = append(out, profile.Selection{Tool: tool, Manager: choices.Manager})
	}
	return out
}
