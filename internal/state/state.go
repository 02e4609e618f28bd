// Package state persists which tools devstrap has installed, with what
// method and version, in a state.json under the devstrap home.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
)

const schemaVersion = 1

// Install methods recorded per tool.
const (
	MethodWinget   = "winget"
	MethodChoco    = "choco"
	MethodScoop    = "scoop"
	MethodDownload = "download"
)

// Record describes one managed install.
type Record struct {
	Version     string    `json:"version,omitempty"`
	Method      string    `json:"method"`
	Path        string    `json:"path,omitempty"`
	InstalledAt time.Time `json:"installed_at"`
}

// State is the decoded state file content.
type State struct {
	Version int               `json:"version"`
	Tools   map[string]Record `json:"tools"`
}

// Get returns the record for a tool ID.
func (s State) Get(id string) (Record, bool) {
	record, ok := s.Tools[id]
	return record, ok
}

// Set stores a record for a tool ID.
func (s *State) Set(id string, record Record) {
	if s.Tools == nil {
		s.Tools = make(map[string]Record)
	}
	s.Tools[id] = record
}

// Remove deletes the record for a tool ID.
func (s *State) Remove(id string) {
	delete(s.Tools, id)
}

// IDs returns the recorded tool IDs sorted alphabetically.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.Tools))
	for id := range s.Tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// System abstracts filesystem operations needed by the store.
// Package-local so tests can run in parallel without shared globals.
type System interface {
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Store reads and writes one state file.
type Store struct {
	path string
	sys  System
}

// NewStore returns a store for the given state file path.
func NewStore(path string) *Store {
	return NewStoreWithSystem(path, RealSystem{})
}

// NewStoreWithSystem returns a store using the given System.
func NewStoreWithSystem(path string, sys System) *Store {
	return &Store{path: path, sys: sys}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing file yields an empty state.
func (s *Store) Load() (State, error) {
	data, err := s.sys.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{Version: schemaVersion, Tools: make(map[string]Record)}, nil
		}
		return State{}, fmt.Errorf(messages.StateReadErrFmt, s.path, err)
	}

	var out State
	if err := json.Unmarshal(data, &out); err != nil {
		return State{}, fmt.Errorf(messages.StateDecodeErrFmt, s.path, err)
	}
	if out.Tools == nil {
		out.Tools = make(map[string]Record)
	}
	return out, nil
}

// Save writes the state file atomically, creating the parent directory
// when needed.
func (s *Store) Save(state State) error {
	state.Version = schemaVersion
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.StateEncodeErrFmt, s.path, err)
	}
	data = append(data, '\n')

	if err := s.sys.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf(messages.StateCreateDirErrFmt, filepath.Dir(s.path), err)
	}
	if err := s.sys.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf(messages.StateWriteErrFmt, s.path, err)
	}
	return nil
}

// Put loads the state, stores the record, and saves.
func (s *Store) Put(id string, record Record) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	current.Set(id, record)
	return s.Save(current)
}

// Delete loads the state, removes the record, and saves.
func (s *Store) Delete(id string) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	current.Remove(id)
	return s.Save(current)
}
