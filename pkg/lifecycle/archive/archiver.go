package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle/retention"
)

// Archiver moves expired artifacts into the archive directory and records
// each move in the index. It satisfies retention.Archiver.
type Archiver struct {
	dir    string
	index  *Index
	logger *slog.Logger

	// Now is the clock used for archived-at timestamps. Overridable in
	// tests.
	Now func() time.Time
}

// New creates an archiver from archive configuration, opening the index and
// creating the archive directory if needed.
func New(cfg config.ArchiveConfig) (*Archiver, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %q: %w", cfg.Directory, err)
	}

	index, err := OpenIndex(cfg.IndexPath)
	if err != nil {
		return nil, err
	}

	return &Archiver{
		dir:    cfg.Directory,
		index:  index,
		logger: slog.Default().With("component", "lifecycle.archive"),
		Now:    time.Now,
	}, nil
}

// Index exposes the underlying archive index for queries.
func (a *Archiver) Index() *Index {
	return a.index
}

// Archive moves one artifact into the archive directory and records it.
// The move prefers an atomic rename and falls back to copy-and-remove when
// the archive lives on a different volume.
func (a *Archiver) Archive(ctx context.Context, artifact retention.Artifact) error {
	dest := filepath.Join(a.dir, artifact.Name)

	if err := moveFile(artifact.Path, dest); err != nil {
		return fmt.Errorf("failed to move %q into archive: %w", artifact.Name, err)
	}

	entry := Entry{
		Name:        artifact.Name,
		Class:       artifact.Class,
		RotatedAt:   artifact.RotatedAt,
		ArchivedAt:  a.Now(),
		Size:        artifact.Size,
		ArchivePath: dest,
	}
	if err := a.index.Record(ctx, entry); err != nil {
		// The artifact is safely in the archive; a missing index row is
		// worth a warning, not a failed cleanup.
		a.logger.Warn("archived artifact not recorded in index",
			"name", artifact.Name,
			"error", err,
		)
	}

	a.logger.Debug("artifact archived",
		"name", artifact.Name,
		"class", artifact.Class,
		"dest", dest,
	)
	return nil
}

// Close closes the archive index.
func (a *Archiver) Close() error {
	return a.index.Close()
}

// moveFile renames src to dest, copying across filesystems when rename is
// not possible.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}

	return os.Remove(src)
}
