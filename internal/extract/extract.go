// Package extract unpacks downloaded archives. Zip, 7z, and the common
// tar variants are supported; installer formats like MSI never pass
// through here.
package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/xi2/xz"

	"github.com/beaconworks/devstrap/internal/messages"
)

var archiveSuffixes = []string{".zip", ".7z", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// Supported reports whether path names an archive Extract can unpack.
func Supported(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Extract unpacks the archive at src into dest and returns the root of
// the extracted content: the single top-level directory when the
// archive has one, dest itself otherwise.
func Extract(src, dest string) (string, error) {
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return extractZip(src, dest)
	case strings.HasSuffix(lower, ".7z"):
		return extract7z(src, dest)
	case strings.HasSuffix(lower, ".tar"),
		strings.HasSuffix(lower, ".tar.gz"),
		strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".tar.bz2"),
		strings.HasSuffix(lower, ".tar.xz"):
		return extractTar(src, dest)
	default:
		return "", fmt.Errorf(messages.ExtractUnsupportedFormatFmt, src)
	}
}

func extractZip(src, dest string) (string, error) {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
	}
	defer reader.Close()

	root := newRootTracker(dest)
	for _, entry := range reader.File {
		target, err := secureJoin(dest, entry.Name)
		if err != nil {
			return "", err
		}
		root.observe(entry.Name)

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", fmt.Errorf(messages.ExtractWriteErrFmt, target, err)
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf(messages.ExtractOpenErrFmt, entry.Name, err)
		}
		err = writeEntry(target, rc, entry.Mode())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return root.path(), nil
}

func extract7z(src, dest string) (string, error) {
	reader, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
	}
	defer reader.Close()

	root := newRootTracker(dest)
	for _, entry := range reader.File {
		target, err := secureJoin(dest, entry.Name)
		if err != nil {
			return "", err
		}
		root.observe(entry.Name)

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", fmt.Errorf(messages.ExtractWriteErrFmt, target, err)
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf(messages.ExtractOpenErrFmt, entry.Name, err)
		}
		err = writeEntry(target, rc, entry.Mode())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return root.path(), nil
}

func extractTar(src, dest string) (string, error) {
	file, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
	}
	defer file.Close()

	var reader io.Reader = file
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(file)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(file, 0)
		if err != nil {
			return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
		}
		reader = xzr
	}

	root := newRootTracker(dest)
	tr := tar.NewReader(reader)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf(messages.ExtractOpenErrFmt, src, err)
		}

		target, err := secureJoin(dest, header.Name)
		if err != nil {
			return "", err
		}
		root.observe(header.Name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", fmt.Errorf(messages.ExtractWriteErrFmt, target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return "", err
			}
		}
	}
	return root.path(), nil
}

func writeEntry(target string, content io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.ExtractWriteErrFmt, target, err)
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf(messages.ExtractWriteErrFmt, target, err)
	}
	_, copyErr := io.Copy(out, content)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf(messages.ExtractWriteErrFmt, target, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf(messages.ExtractWriteErrFmt, target, closeErr)
	}
	return nil
}

// secureJoin joins an archive entry name onto dest, rejecting names
// that resolve outside dest.
func secureJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != filepath.Clean(dest) && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.ExtractEntryEscapesDestFmt, name)
	}
	return target, nil
}

// rootTracker watches entry names to decide whether the archive has a
// single top-level directory.
type rootTracker struct {
	dest  string
	root  string
	multi bool
}

func newRootTracker(dest string) *rootTracker {
	return &rootTracker{dest: dest}
}

func (r *rootTracker) observe(name string) {
	top := strings.SplitN(filepath.ToSlash(name), "/", 2)[0]
	if top == "" || top == "." {
		r.multi = true
		return
	}
	if r.root == "" {
		r.root = top
		return
	}
	if r.root != top {
		r.multi = true
	}
}

func (r *rootTracker) path() string {
	if r.multi || r.root == "" {
		return r.dest
	}
	return filepath.Join(r.dest, r.root)
}
