package rotation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStateStore_EnsureReady_AbsentFile(t *testing.T) {
	// First run: the directory exists but the engine has not yet created
	// the state file. That is not an error.
	path := filepath.Join(t.TempDir(), "rotation.state")

	store := NewStateStore(path)
	if err := store.EnsureReady(); err != nil {
		t.Errorf("EnsureReady() = %v, want nil for absent state file", err)
	}
}

func TestStateStore_EnsureReady_CreatesParent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "var", "lib", "custodian")
	path := filepath.Join(dir, "rotation.state")

	store := NewStateStore(path)
	if err := store.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady() failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("parent directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent path should be a directory")
	}
}

func TestStateStore_EnsureReady_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotation.state")
	if err := os.WriteFile(path, []byte("logrotate state -- version 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStateStore(path)
	if err := store.EnsureReady(); err != nil {
		t.Errorf("EnsureReady() = %v, want nil for readable state file", err)
	}
}

func TestStateStore_EnsureReady_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotation.state")
	if err := os.Mkdir(path, 0o700); err != nil {
		t.Fatal(err)
	}

	store := NewStateStore(path)
	err := store.EnsureReady()
	if !errors.Is(err, ErrStateUnreadable) {
		t.Errorf("EnsureReady() = %v, want ErrStateUnreadable for directory path", err)
	}
}

func TestStateStore_EnsureReady_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "custodian")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStateStore(filepath.Join(blocker, "rotation.state"))
	err := store.EnsureReady()
	if !errors.Is(err, ErrStateUnreadable) {
		t.Errorf("EnsureReady() = %v, want ErrStateUnreadable when parent is a file", err)
	}
}
