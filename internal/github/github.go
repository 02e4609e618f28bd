// Package github looks up release metadata and assets for tools whose
// catalog entry downloads from GitHub releases.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/beaconworks/devstrap/internal/messages"
)

var (
	apiBaseURL = "https://api.github.com"
	httpClient = &http.Client{Timeout: 30 * time.Second}
	retryDelay = 250 * time.Millisecond
)

const fetchRetryCount = 1

const userAgent = "devstrap"

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Release is the subset of the GitHub release payload devstrap uses.
type Release struct {
	TagName    string  `json:"tag_name"`
	Name       string  `json:"name"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

// Version returns the release tag without a leading "v".
func (r Release) Version() string {
	return strings.TrimPrefix(strings.TrimSpace(r.TagName), "v")
}

// RateLimitError indicates GitHub's API rate limit was hit.
//
// Callers should generally treat this as a best-effort failure and
// suppress or minimize output.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = fmt.Sprintf("%d", *e.Remaining)
	}
	return fmt.Sprintf("github api rate limit exceeded (%s, remaining=%s)", e.Status, remainingText)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// LatestRelease fetches the latest release for "owner/name".
func LatestRelease(ctx context.Context, repo string) (Release, error) {
	return fetchRelease(ctx, repo, apiBaseURL+"/repos/"+repo+"/releases/latest")
}

// ReleaseByTag fetches the release tagged tag (with or without a
// leading "v"; GitHub tags for the supported repos carry one).
func ReleaseByTag(ctx context.Context, repo string, tag string) (Release, error) {
	trimmed := strings.TrimSpace(tag)
	if !strings.HasPrefix(trimmed, "v") {
		trimmed = "v" + trimmed
	}
	return fetchRelease(ctx, repo, apiBaseURL+"/repos/"+repo+"/releases/tags/"+url.PathEscape(trimmed))
}

// MatchAsset returns the first asset whose name matches the glob
// pattern (path.Match syntax; a pattern without wildcards is an exact
// name).
func MatchAsset(assets []Asset, pattern string) (Asset, bool) {
	for _, asset := range assets {
		ok, err := path.Match(pattern, asset.Name)
		if err == nil && ok {
			return asset, true
		}
	}
	return Asset{}, false
}

func fetchRelease(ctx context.Context, repo string, releaseURL string) (Release, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for attempt := 0; attempt <= fetchRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
		if err != nil {
			return Release{}, fmt.Errorf(messages.GithubCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := httpClient.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return Release{}, fmt.Errorf(messages.GithubFetchReleaseErrFmt, repo, err)
		}

		if resp.StatusCode != http.StatusOK {
			if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
				_ = resp.Body.Close()
				return Release{}, rateLimitErr
			}
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(nil, status, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return Release{}, fmt.Errorf(messages.GithubFetchReleaseStatusFmt, repo, statusText)
		}

		var release Release
		if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
			_ = resp.Body.Close()
			return Release{}, fmt.Errorf(messages.GithubDecodeReleaseErrFmt, repo, err)
		}
		_ = resp.Body.Close()
		if strings.TrimSpace(release.TagName) == "" {
			return Release{}, errors.New(messages.GithubReleaseMissingTag)
		}
		return release, nil
	}

	return Release{}, fmt.Errorf(messages.GithubFetchReleaseErrFmt, repo, errors.New("retry budget exhausted"))
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub returns 403 Forbidden for unauthenticated exhaustion; confirm with rate-limit headers.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil //nolint:nilerr // Malformed header means we cannot confirm rate limiting; fall through to generic error.
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= fetchRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
