package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle/retention"
)

func newTestArchiver(t *testing.T) *Archiver {
	t.Helper()
	dir := t.TempDir()
	archiver, err := New(config.ArchiveConfig{
		Enabled:   true,
		Directory: filepath.Join(dir, "archives"),
		IndexPath: filepath.Join(dir, "archives", "index.db"),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { archiver.Close() })
	return archiver
}

func testArtifact(t *testing.T, name string) retention.Artifact {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("rotated log content"), 0o644); err != nil {
		t.Fatal(err)
	}
	return retention.Artifact{
		Name:      name,
		Path:      path,
		Class:     "audit",
		RotatedAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Size:      19,
	}
}

func TestArchiver_MovesAndRecords(t *testing.T) {
	archiver := newTestArchiver(t)
	artifact := testArtifact(t, "audit_production_2026-07-01.log.gz")

	ctx := context.Background()
	if err := archiver.Archive(ctx, artifact); err != nil {
		t.Fatalf("Archive() failed: %v", err)
	}

	if _, err := os.Stat(artifact.Path); !os.IsNotExist(err) {
		t.Error("source artifact should be gone after archiving")
	}
	if _, err := os.Stat(filepath.Join(archiver.dir, artifact.Name)); err != nil {
		t.Errorf("archived file missing: %v", err)
	}

	entries, err := archiver.Index().List(ctx, "", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("index holds %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Name != artifact.Name {
		t.Errorf("Name = %q, want %q", entry.Name, artifact.Name)
	}
	if entry.Class != "audit" {
		t.Errorf("Class = %q, want audit", entry.Class)
	}
	if !entry.RotatedAt.Equal(artifact.RotatedAt) {
		t.Errorf("RotatedAt = %v, want %v", entry.RotatedAt, artifact.RotatedAt)
	}
	if entry.Size != artifact.Size {
		t.Errorf("Size = %d, want %d", entry.Size, artifact.Size)
	}
}

func TestIndex_ListFiltersByClass(t *testing.T) {
	archiver := newTestArchiver(t)
	ctx := context.Background()

	for name, class := range map[string]string{
		"audit_production_2026-07-01.log.gz": "audit",
		"app_production_2026-07-02.log.gz":   "app",
	} {
		a := testArtifact(t, name)
		a.Class = class
		if err := archiver.Archive(ctx, a); err != nil {
			t.Fatalf("Archive(%q) failed: %v", name, err)
		}
	}

	audit, err := archiver.Index().List(ctx, "audit", 10)
	if err != nil {
		t.Fatalf("List(audit) failed: %v", err)
	}
	if len(audit) != 1 || audit[0].Class != "audit" {
		t.Errorf("List(audit) = %+v, want one audit entry", audit)
	}

	all, err := archiver.Index().List(ctx, "", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d entries, want 2", len(all))
	}

	count, err := archiver.Index().Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestIndex_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	idx, err := OpenIndex(path)
	if err != nil {
		t.Fatalf("OpenIndex() failed: %v", err)
	}

	ctx := context.Background()
	entry := Entry{
		Name:        "sql_production_2026-06-01.log.gz",
		Class:       "sql",
		RotatedAt:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ArchivedAt:  time.Date(2026, 8, 25, 3, 0, 0, 0, time.UTC),
		Size:        2048,
		ArchivePath: "/archives/sql_production_2026-06-01.log.gz",
	}
	if err := idx.Record(ctx, entry); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// The index must survive process restarts.
	reopened, err := OpenIndex(path)
	if err != nil {
		t.Fatalf("OpenIndex() after close failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.List(ctx, "sql", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != entry.Name {
		t.Errorf("entries = %+v, want the recorded entry", entries)
	}
}

func TestMoveFile_AcrossDirectories(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.log.gz")
	dest := filepath.Join(t.TempDir(), "b.log.gz")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := moveFile(src, dest); err != nil {
		t.Fatalf("moveFile() failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination unreadable: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("destination content = %q, want payload", data)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be removed after move")
	}
}
