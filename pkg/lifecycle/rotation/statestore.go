package rotation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrStateUnreadable is returned when the state store location exists but
// cannot be accessed. The engine reports its own failures through its exit
// status; this error covers the case the engine never gets to see.
var ErrStateUnreadable = errors.New("rotation state store unreadable")

// StateStore is the persisted rotation bookkeeping owned by the external
// rotation engine. Custodian never reads or writes its content; it only
// verifies that the storage location is usable before the engine runs, and
// hands the path to the engine. The location must survive container
// restarts, so it belongs on a persistent volume.
type StateStore struct {
	path string
}

// NewStateStore creates a state store handle for the given file path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path passed to the rotation engine.
func (s *StateStore) Path() string {
	return s.path
}

// EnsureReady verifies the state store location is usable. The parent
// directory is created if missing (mode 0700, matching the privileged
// identity that owns rotation bookkeeping). Absence of the state file
// itself is not an error: the engine initializes it transparently on first
// run. An existing file that is not a regular file, or that cannot be
// opened for reading, yields ErrStateUnreadable.
func (s *StateStore) EnsureReady() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("state store directory %q: %w: %v", dir, ErrStateUnreadable, err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: the engine creates the file itself.
			return nil
		}
		return fmt.Errorf("state store %q: %w: %v", s.path, ErrStateUnreadable, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("state store %q is not a regular file: %w", s.path, ErrStateUnreadable)
	}

	// Probe access only. Content stays opaque to custodian.
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("state store %q: %w: %v", s.path, ErrStateUnreadable, err)
	}
	return f.Close()
}
