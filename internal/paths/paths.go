// Package paths resolves the devstrap home directory layout.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/beaconworks/devstrap/internal/messages"
)

// EnvHome overrides the devstrap home directory when set.
const EnvHome = "DEVSTRAP_HOME"

// HomeDirName is the default directory name under the user home.
const HomeDirName = ".devstrap"

// Paths holds resolved locations under the devstrap home directory.
type Paths struct {
	Home       string
	ConfigPath string
	StatePath  string
	EnvPath    string
	CacheDir   string
	ToolsDir   string
	BinDir     string
}

// ForHome returns the directory layout rooted at home.
func ForHome(home string) Paths {
	return Paths{
		Home:       home,
		ConfigPath: filepath.Join(home, "config.toml"),
		StatePath:  filepath.Join(home, "state.json"),
		EnvPath:    filepath.Join(home, "env"),
		CacheDir:   filepath.Join(home, "cache"),
		ToolsDir:   filepath.Join(home, "tools"),
		BinDir:     filepath.Join(home, "bin"),
	}
}

// Resolve determines the devstrap home directory. DEVSTRAP_HOME wins when
// set; otherwise the layout is rooted at ~/.devstrap.
func Resolve() (Paths, error) {
	if override := os.Getenv(EnvHome); override != "" {
		return ForHome(override), nil
	}
	dir, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.PathsResolveHomeErrFmt, err)
	}
	return ForHome(filepath.Join(dir, HomeDirName)), nil
}

// EnsureHome creates the home directory tree if it does not exist.
func EnsureHome(p Paths) error {
	for _, dir := range []string{p.Home, p.CacheDir, p.ToolsDir, p.BinDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(messages.PathsCreateDirErrFmt, dir, err)
		}
	}
	return nil
}
