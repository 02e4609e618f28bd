package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// FindingCodeIDInvalid reports a tool ID that is not lowercase kebab-case.
	FindingCodeIDInvalid = "CATALOG_ID_INVALID"
	// FindingCodeIDDuplicate reports a tool ID appearing more than once.
	FindingCodeIDDuplicate = "CATALOG_ID_DUPLICATE"
	// FindingCodeNameMissing reports a tool without a display name.
	FindingCodeNameMissing = "CATALOG_NAME_MISSING"
	// FindingCodeNoInstallMethod reports a tool with no manager ID and no download.
	FindingCodeNoInstallMethod = "CATALOG_NO_INSTALL_METHOD"
	// FindingCodeNotDetectable reports a tool with no check command, registry
	// name, or service name.
	FindingCodeNotDetectable = "CATALOG_NOT_DETECTABLE"
	// FindingCodeDownloadURLMissing reports a download with neither URL nor
	// GitHub release source.
	FindingCodeDownloadURLMissing = "CATALOG_DOWNLOAD_URL_MISSING"
	// FindingCodeDownloadURLInsecure reports a non-HTTPS download URL.
	FindingCodeDownloadURLInsecure = "CATALOG_DOWNLOAD_URL_INSECURE"
	// FindingCodeDownloadKindUnknown reports an unrecognized installer kind.
	FindingCodeDownloadKindUnknown = "CATALOG_DOWNLOAD_KIND_UNKNOWN"
	// FindingCodeVersionPatternInvalid reports a version pattern that does not compile.
	FindingCodeVersionPatternInvalid = "CATALOG_VERSION_PATTERN_INVALID"
)

// Severity indicates validation finding severity.
type Severity string

const (
	// SeverityWarn indicates a non-blocking catalog inconsistency.
	SeverityWarn Severity = "warn"
	// SeverityError indicates an entry that cannot be used as written.
	SeverityError Severity = "error"
)

// Finding is a single deterministic catalog diagnostic.
type Finding struct {
	Code     string
	Severity Severity
	ToolID   string
	Message  string
}

var installerKinds = map[InstallerKind]struct{}{
	InstallerMSI:  {},
	InstallerEXE:  {},
	InstallerZip:  {},
	InstallerAppx: {},
	InstallerBin:  {},
}

// ValidateTool validates a single catalog entry.
func ValidateTool(tool Tool) []Finding {
	findings := make([]Finding, 0)

	if !isValidToolID(tool.ID) {
		findings = append(findings, failure(
			FindingCodeIDInvalid,
			tool.ID,
			fmt.Sprintf("tool ID %q must contain only lowercase letters, digits, and hyphens", tool.ID),
		))
	}
	if strings.TrimSpace(tool.Name) == "" {
		findings = append(findings, failure(FindingCodeNameMissing, tool.ID, "tool has no display name"))
	}
	if !tool.Installable() {
		findings = append(findings, failure(
			FindingCodeNoInstallMethod,
			tool.ID,
			"tool has no package manager ID and no download source",
		))
	}
	if tool.CheckCommand == "" && len(tool.RegistryNames) == 0 && tool.ServiceName == "" {
		findings = append(findings, warning(
			FindingCodeNotDetectable,
			tool.ID,
			"tool has no check command, registry names, or service name; installs cannot be verified",
		))
	}
	if tool.VersionPattern != "" {
		if _, err := regexp.Compile(tool.VersionPattern); err != nil {
			findings = append(findings, failure(
				FindingCodeVersionPatternInvalid,
				tool.ID,
				fmt.Sprintf("version pattern %q does not compile: %v", tool.VersionPattern, err),
			))
		}
	}
	if tool.Download != nil {
		findings = append(findings, validateDownload(tool.ID, *tool.Download)...)
	}

	sortFindings(findings)
	return findings
}

// ValidateAll validates every builtin entry plus table-level invariants.
func ValidateAll() []Finding {
	findings := make([]Finding, 0)
	seen := make(map[string]struct{}, len(builtin))
	for _, tool := range builtin {
		if _, ok := seen[tool.ID]; ok {
			findings = append(findings, failure(
				FindingCodeIDDuplicate,
				tool.ID,
				fmt.Sprintf("tool ID %q appears more than once", tool.ID),
			))
		}
		seen[tool.ID] = struct{}{}
		findings = append(findings, ValidateTool(tool)...)
	}
	sortFindings(findings)
	return findings
}

func validateDownload(toolID string, download Download) []Finding {
	findings := make([]Finding, 0)
	if download.URL == "" && download.GitHubRepo == "" {
		findings = append(findings, failure(
			FindingCodeDownloadURLMissing,
			toolID,
			"download has neither a URL nor a GitHub release source",
		))
	}
	if download.URL != "" && !strings.HasPrefix(download.URL, "https://") {
		findings = append(findings, failure(
			FindingCodeDownloadURLInsecure,
			toolID,
			fmt.Sprintf("download URL %q must use https", download.URL),
		))
	}
	if _, ok := installerKinds[download.Kind]; !ok {
		findings = append(findings, failure(
			FindingCodeDownloadKindUnknown,
			toolID,
			fmt.Sprintf("unknown installer kind %q", string(download.Kind)),
		))
	}
	return findings
}

func isValidToolID(id string) bool {
	if id == "" {
		return false
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return false
	}
	for _, r := range id {
		if r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') {
			continue
		}
		return false
	}
	return true
}

func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].ToolID != findings[j].ToolID {
			return findings[i].ToolID < findings[j].ToolID
		}
		if findings[i].Code != findings[j].Code {
			return findings[i].Code < findings[j].Code
		}
		return findings[i].Message < findings[j].Message
	})
}

func warning(code string, toolID string, message string) Finding {
	return Finding{Code: code, Severity: SeverityWarn, ToolID: toolID, Message: message}
}

func failure(code string, toolID string, message string) Finding {
	return Finding{Code: code, Severity: SeverityError, ToolID: toolID, Message: message}
}
