// Package download fetches installer artifacts into the devstrap cache
// directory, verifying checksums when the catalog provides them.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/beaconworks/devstrap/internal/messages"
)

// ErrChecksumMismatch reports a downloaded file failing verification.
var ErrChecksumMismatch = errors.New(messages.DownloadChecksumMismatch)

const userAgent = "devstrap"

// Fetcher downloads artifacts into a cache directory.
type Fetcher struct {
	client   *http.Client
	cacheDir string
	retries  int
	delay    time.Duration
}

// New returns a fetcher writing into cacheDir. timeout bounds each
// request; retries is the extra attempts after a retryable failure.
func New(cacheDir string, timeout time.Duration, retries int) *Fetcher {
	if retries < 0 {
		retries = 0
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		cacheDir: cacheDir,
		retries:  retries,
		delay:    250 * time.Millisecond,
	}
}

// Fetch downloads rawURL into the cache and returns the local path. A
// cached file that already matches the expected checksum is reused
// without a request.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, sha256hex string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", errors.New(messages.DownloadEmptyURL)
	}
	dest := filepath.Join(f.cacheDir, FileName(rawURL))
	if sha256hex != "" && fileMatchesChecksum(dest, sha256hex) {
		return dest, nil
	}
	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf(messages.DownloadCreateCacheErrFmt, f.cacheDir, err)
	}

	for attempt := 0; attempt <= f.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", fmt.Errorf(messages.DownloadCreateRequestErrFmt, rawURL, err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			if f.shouldRetry(err, 0, attempt) {
				time.Sleep(f.delay)
				continue
			}
			return "", fmt.Errorf(messages.DownloadFetchErrFmt, rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if f.shouldRetry(nil, status, attempt) {
				time.Sleep(f.delay)
				continue
			}
			return "", fmt.Errorf(messages.DownloadStatusFmt, rawURL, statusText)
		}

		local, err := f.writeBody(resp, dest, sha256hex, rawURL)
		_ = resp.Body.Close()
		if err != nil {
			return "", err
		}
		return local, nil
	}

	return "", fmt.Errorf(messages.DownloadFetchErrFmt, rawURL, errors.New("retry budget exhausted"))
}

func (f *Fetcher) writeBody(resp *http.Response, dest string, sha256hex string, rawURL string) (string, error) {
	tmp, err := os.CreateTemp(f.cacheDir, filepath.Base(dest)+".part-*")
	if err != nil {
		return "", fmt.Errorf(messages.DownloadWriteErrFmt, dest, err)
	}
	tmpName := tmp.Name()

	hasher := sha256.New()
	written, copyErr := io.Copy(io.MultiWriter(tmp, hasher), resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.DownloadWriteErrFmt, dest, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.DownloadWriteErrFmt, dest, closeErr)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.DownloadSizeMismatchFmt, rawURL, written, resp.ContentLength)
	}
	if sha256hex != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(got, sha256hex) {
			_ = os.Remove(tmpName)
			return "", fmt.Errorf(messages.DownloadChecksumDetailFmt, ErrChecksumMismatch, dest, got, sha256hex)
		}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.DownloadWriteErrFmt, dest, err)
	}
	return dest, nil
}

func (f *Fetcher) shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= f.retries {
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

// FileName derives a cache file name from a URL: the last path
// segment, falling back to the host, with unsafe characters replaced.
func FileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeFileName(rawURL)
	}
	base := path.Base(parsed.Path)
	if base == "" || base == "/" || base == "." {
		base = parsed.Host
	}
	if base == "" {
		base = "artifact"
	}
	return sanitizeFileName(base)
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

func fileMatchesChecksum(path string, sha256hex string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return false
	}
	return strings.EqualFold(hex.EncodeToString(hasher.Sum(nil)), sha256hex)
}
