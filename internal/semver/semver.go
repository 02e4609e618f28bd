// Package semver compares the loosely formatted versions that installer
// ecosystems report. Versions are reduced to their leading numeric
// segments; pre-release tags and vendor suffixes are ignored.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beaconworks/devstrap/internal/messages"
)

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*`)

// Extract pulls the first dotted numeric run out of raw command output,
// e.g. "git version 2.43.0.windows.1" yields "2.43.0". The boolean
// reports whether anything version-like was found.
func Extract(raw string) (string, bool) {
	match := versionPattern.FindString(raw)
	return match, match != ""
}

// Parse reads up to the first three numeric segments of version.
// A leading "v" and anything after the first "-" or "+" are ignored.
// Segments past the third are dropped, keeping vendor builds such as
// 2.43.0.1 comparable.
func Parse(version string) ([3]int, error) {
	trimmed := strings.TrimSpace(version)
	trimmed = strings.TrimPrefix(trimmed, "v")
	if idx := strings.IndexAny(trimmed, "-+"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return [3]int{}, fmt.Errorf(messages.VersionInvalidFmt, version)
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	var out [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return [3]int{}, fmt.Errorf(messages.VersionInvalidSegmentFmt, part, err)
		}
		if n < 0 {
			return [3]int{}, fmt.Errorf(messages.VersionInvalidFmt, version)
		}
		out[i] = n
	}
	return out, nil
}

// Compare orders two versions: -1 when a < b, 0 when equal, 1 when a > b.
func Compare(a, b string) (int, error) {
	pa, err := Parse(a)
	if err != nil {
		return 0, err
	}
	pb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	for i := range pa {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

// IsOlder reports whether installed is strictly older than candidate.
// Unparseable input falls back to an exact-string inequality check so a
// malformed version never blocks an upgrade decision.
func IsOlder(installed, candidate string) bool {
	cmp, err := Compare(installed, candidate)
	if err != nil {
		return strings.TrimSpace(installed) != strings.TrimSpace(candidate)
	}
	return cmp < 0
}
