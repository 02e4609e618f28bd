package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/semver"
)

const (
	// FindingCodeEmpty reports a profile that selects no tools.
	FindingCodeEmpty = "PROFILE_EMPTY"
	// FindingCodeToolUnknown reports an entry naming no builtin or custom tool.
	FindingCodeToolUnknown = "PROFILE_TOOL_UNKNOWN"
	// FindingCodeToolDuplicate reports an ID selected more than once.
	FindingCodeToolDuplicate = "PROFILE_TOOL_DUPLICATE"
	// FindingCodePinInvalid reports a version pin that does not parse.
	FindingCodePinInvalid = "PROFILE_PIN_INVALID"
	// FindingCodeManagerUnknown reports an unrecognized manager name.
	FindingCodeManagerUnknown = "PROFILE_MANAGER_UNKNOWN"
	// FindingCodeWSLBlank reports an empty wsl distro entry.
	FindingCodeWSLBlank = "PROFILE_WSL_BLANK"
	// FindingCodeWSLDuplicate reports a distro listed more than once.
	FindingCodeWSLDuplicate = "PROFILE_WSL_DUPLICATE"
)

// Validate checks a parsed profile against the catalog and reports
// deterministic findings. Findings never stop Selections; callers
// decide whether errors block.
func Validate(p Profile) []catalog.Finding {
	findings := make([]catalog.Finding, 0)

	if len(p.Tools) == 0 {
		findings = append(findings, catalog.Finding{
			Code:     FindingCodeEmpty,
			Severity: catalog.SeverityWarn,
			Message:  "profile selects no tools",
		})
	}

	seen := make(map[string]struct{}, len(p.Tools))
	for _, entry := range p.Tools {
		id := normalizeID(entry.ID)
		if _, ok := seen[id]; ok {
			findings = append(findings, catalog.Finding{
				Code:     FindingCodeToolDuplicate,
				Severity: catalog.SeverityWarn,
				ToolID:   id,
				Message:  fmt.Sprintf("tool %q is selected more than once", id),
			})
		}
		seen[id] = struct{}{}

		if _, err := p.lookupTool(id); err != nil {
			findings = append(findings, catalog.Finding{
				Code:     FindingCodeToolUnknown,
				Severity: catalog.SeverityError,
				ToolID:   id,
				Message:  fmt.Sprintf("tool %q is not in the catalog or the profile's custom tools", id),
			})
		}
		if pin := strings.TrimSpace(entry.Version); pin != "" {
			if _, err := semver.Parse(pin); err != nil {
				findings = append(findings, catalog.Finding{
					Code:     FindingCodePinInvalid,
					Severity: catalog.SeverityWarn,
					ToolID:   id,
					Message:  fmt.Sprintf("version pin %q is not a dotted version", pin),
				})
			}
		}
		if manager := strings.TrimSpace(entry.Manager); manager != "" {
			if _, err := pkgmgr.ParseKind(manager); err != nil {
				findings = append(findings, catalog.Finding{
					Code:     FindingCodeManagerUnknown,
					Severity: catalog.SeverityError,
					ToolID:   id,
					Message:  fmt.Sprintf("unknown manager %q (allowed: %s)", manager, strings.Join(pkgmgr.KindNames(), ", ")),
				})
			}
		}
	}

	for _, name := range p.Managers.Order {
		if _, err := pkgmgr.ParseKind(name); err != nil {
			findings = append(findings, catalog.Finding{
				Code:     FindingCodeManagerUnknown,
				Severity: catalog.SeverityError,
				Message:  fmt.Sprintf("unknown manager %q in managers.order (allowed: %s)", name, strings.Join(pkgmgr.KindNames(), ", ")),
			})
		}
	}

	seenDistros := make(map[string]struct{}, len(p.WSL))
	for _, name := range p.WSL {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			findings = append(findings, catalog.Finding{
				Code:     FindingCodeWSLBlank,
				Severity: catalog.SeverityError,
				Message:  "wsl entry is blank",
			})
			continue
		}
		lower := strings.ToLower(trimmed)
		if _, ok := seenDistros[lower]; ok {
			findings = append(findings, catalog.Finding{
				Code:     FindingCodeWSLDuplicate,
				Severity: catalog.SeverityWarn,
				Message:  fmt.Sprintf("distro %q is listed more than once", trimmed),
			})
		}
		seenDistros[lower] = struct{}{}
	}

	for _, custom := range p.Custom {
		findings = append(findings, catalog.ValidateTool(custom.Tool())...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].ToolID != findings[j].ToolID {
			return findings[i].ToolID < findings[j].ToolID
		}
		return findings[i].Code < findings[j].Code
	})
	return findings
}

// HasErrors reports whether any finding is severity error.
func HasErrors(findings []catalog.Finding) bool {
	for _, f := range findings {
		if f.Severity == catalog.SeverityError {
			return true
		}
	}
	return false
}
