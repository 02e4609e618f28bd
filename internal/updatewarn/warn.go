// Package updatewarn prints a best-effort notice when a newer devstrap
// release is available, at most once per throttle interval.
package updatewarn

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/beaconworks/devstrap/internal/github"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/selfupdate"
)

// EnvNoUpdateCheck disables the release check entirely when set.
const EnvNoUpdateCheck = "DEVSTRAP_NO_UPDATE_CHECK"

// stampName is the throttle marker file under the devstrap home.
const stampName = ".update-check"

const throttleInterval = 24 * time.Hour

// Seams for tests.
var (
	CheckForUpdate = selfupdate.Check
	timeNow        = time.Now
)

// WarnIfOutdated emits update warnings to stderr when a newer release
// is available. Checks are throttled through a stamp file under home;
// an empty home disables throttling. Failures never surface as errors.
func WarnIfOutdated(ctx context.Context, currentVersion string, home string, stderr io.Writer) {
	if strings.TrimSpace(os.Getenv(EnvNoUpdateCheck)) != "" {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	stamp := ""
	if home != "" {
		stamp = filepath.Join(home, stampName)
		if checkedRecently(stamp) {
			return
		}
	}

	warnColor := color.New(color.FgYellow)
	result, err := CheckForUpdate(ctx, currentVersion)
	if stamp != "" {
		touchStamp(stamp)
	}
	if err != nil {
		// Rate limiting is expected on busy networks; stay quiet.
		if github.IsRateLimitError(err) {
			return
		}
		_, _ = warnColor.Fprintf(stderr, messages.WarnUpdateCheckFailedFmt, err)
		return
	}
	if result.CurrentIsDev {
		_, _ = warnColor.Fprintf(stderr, messages.WarnDevBuildFmt, result.Latest)
		return
	}
	if result.Outdated {
		_, _ = warnColor.Fprintf(stderr, messages.WarnUpdateAvailableFmt,
			result.Latest, result.Current, selfupdate.ReleasesBaseURL)
	}
}

func checkedRecently(stamp string) bool {
	info, err := os.Stat(stamp)
	if err != nil {
		return false
	}
	return timeNow().Sub(info.ModTime()) < throttleInterval
}

// touchStamp records that a check ran. Failures are ignored; the next
// run simply checks again.
func touchStamp(stamp string) {
	if err := os.MkdirAll(filepath.Dir(stamp), 0o755); err != nil {
		return
	}
	now := timeNow()
	if err := os.Chtimes(stamp, now, now); err != nil {
		_ = os.WriteFile(stamp, nil, 0o644)
	}
}
