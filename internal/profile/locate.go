package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beaconworks/devstrap/internal/messages"
)

// Locate searches for a devstrap.yaml starting at the given directory
// and walking toward the filesystem root. It returns the profile path
// and whether one was found.
func Locate(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf(messages.ProfileResolveStartErrFmt, start, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf(messages.ProfileIsDirectoryFmt, candidate)
			}
			return candidate, true, nil
		}
		if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(messages.ProfileStatErrFmt, candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
