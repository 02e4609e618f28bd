// Package selfupdate checks GitHub for newer devstrap releases.
package selfupdate

import (
	"context"
	"fmt"
	"strings"

	"github.com/beaconworks/devstrap/internal/github"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/semver"
)

// Repo identifies the GitHub repository used for release checks.
const Repo = "beaconworks/devstrap"

// ReleasesBaseURL is the base URL for release downloads.
const ReleasesBaseURL = "https://github.com/" + Repo + "/releases"

var latestReleaseFunc = github.LatestRelease

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Check fetches the latest release and compares it to currentVersion.
// Builds without a release version (empty, "dev", or untagged) report
// CurrentIsDev instead of an outdated flag.
func Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	current, isDev := normalizeCurrent(currentVersion)

	release, err := latestReleaseFunc(ctx, Repo)
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateFetchLatestReleaseErrFmt, err)
	}
	latest := release.Version()
	if latest == "" {
		return CheckResult{}, fmt.Errorf(messages.UpdateInvalidLatestReleaseFmt, release.TagName)
	}

	result := CheckResult{Current: current, Latest: latest, CurrentIsDev: isDev}
	if !isDev {
		cmp, err := semver.Compare(current, latest)
		if err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, currentVersion, err)
		}
		result.Outdated = cmp < 0
	}
	return result, nil
}

// normalizeCurrent strips the v prefix and classifies non-release
// builds as dev.
func normalizeCurrent(raw string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" || trimmed == "dev" {
		return "dev", true
	}
	if _, err := semver.Parse(trimmed); err != nil {
		return trimmed, true
	}
	return trimmed, false
}
