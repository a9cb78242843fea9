package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Report summarizes one cleanup pass. It is written to the log stream and
// fed to the metrics collector; it is not persisted.
type Report struct {
	// Scanned is the number of rotated artifacts considered.
	Scanned int `json:"scanned"`

	// Removed is the number of artifacts deleted.
	Removed int `json:"removed"`

	// Archived is the number of artifacts moved to the archive instead of
	// deleted.
	Archived int `json:"archived"`

	// BytesReclaimed is the combined size of removed and archived
	// artifacts.
	BytesReclaimed int64 `json:"bytes_reclaimed"`
}

// Total returns the number of artifacts disposed of in this pass.
func (r Report) Total() int {
	return r.Removed + r.Archived
}

// Archiver moves an expired artifact to the archive instead of deleting it.
type Archiver interface {
	Archive(ctx context.Context, a Artifact) error
}

// Cleaner is the retention cleanup pass. It scans the log directory,
// filters rotated artifacts past their retention threshold, and deletes or
// archives them. Live log files are never eligible, so the pass is safe to
// run concurrently with active logging, and a pass over an already-clean
// directory succeeds with an empty report.
type Cleaner struct {
	dir      string
	policy   Policy
	archiver Archiver
	logger   *slog.Logger

	// Now is the clock used to evaluate retention cutoffs. Overridable in
	// tests.
	Now func() time.Time
}

// NewCleaner creates a cleanup pass over dir with the given policy. A nil
// archiver means expired artifacts are deleted.
func NewCleaner(dir string, policy Policy, archiver Archiver) *Cleaner {
	return &Cleaner{
		dir:      dir,
		policy:   policy,
		archiver: archiver,
		logger:   slog.Default().With("component", "lifecycle.retention"),
		Now:      time.Now,
	}
}

// Clean runs one retention pass: expired artifacts first, then the oldest
// remaining artifacts until the combined size is within the configured
// bound. It returns the report alongside any per-file errors, joined.
// A pass that disposes of nothing is still a success.
func (c *Cleaner) Clean(ctx context.Context) (Report, error) {
	return c.clean(ctx, false)
}

// CleanAll disposes of every rotated artifact regardless of age. Used by
// the manual cleanup command's --force flag.
func (c *Cleaner) CleanAll(ctx context.Context) (Report, error) {
	return c.clean(ctx, true)
}

func (c *Cleaner) clean(ctx context.Context, force bool) (Report, error) {
	var report Report

	artifacts, err := c.scan()
	if err != nil {
		return report, err
	}
	report.Scanned = len(artifacts)

	now := c.Now()
	var errs []error
	var kept []Artifact

	// Phase 1: dispose by age.
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(append(errs, err)...)
		}
		if !force && !c.policy.Expired(a, now) {
			kept = append(kept, a)
			continue
		}
		if err := c.dispose(ctx, a, &report); err != nil {
			errs = append(errs, err)
			kept = append(kept, a)
		}
	}

	// Phase 2: dispose oldest-first until under the size bound.
	if max := c.policy.MaxTotalBytes(); max > 0 {
		var total int64
		for _, a := range kept {
			total += a.Size
		}
		if total > max {
			sort.Slice(kept, func(i, j int) bool {
				return kept[i].RotatedAt.Before(kept[j].RotatedAt)
			})
			for _, a := range kept {
				if total <= max {
					break
				}
				if err := ctx.Err(); err != nil {
					return report, errors.Join(append(errs, err)...)
				}
				if err := c.dispose(ctx, a, &report); err != nil {
					errs = append(errs, err)
					continue
				}
				total -= a.Size
			}
		}
	}

	if report.Total() == 0 {
		c.logger.Debug("nothing to clean",
			"scanned", report.Scanned,
		)
	} else {
		c.logger.Info("retention cleanup completed",
			"scanned", report.Scanned,
			"removed", report.Removed,
			"archived", report.Archived,
			"bytes_reclaimed", report.BytesReclaimed,
		)
	}

	return report, errors.Join(errs...)
}

// scan lists rotated artifacts in the log directory. A missing directory
// yields an empty result: there is nothing to clean.
func (c *Cleaner) scan() ([]Artifact, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn("log directory does not exist", "dir", c.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan log directory %q: %w", c.dir, err)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		a, ok := ParseArtifact(entry.Name(), info.Size(), info.ModTime())
		if !ok {
			continue
		}
		a.Path = filepath.Join(c.dir, a.Name)
		artifacts = append(artifacts, a)
	}

	return artifacts, nil
}

// dispose archives or deletes one artifact and updates the report.
func (c *Cleaner) dispose(ctx context.Context, a Artifact, report *Report) error {
	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, a); err != nil {
			return fmt.Errorf("failed to archive %q: %w", a.Name, err)
		}
		report.Archived++
		report.BytesReclaimed += a.Size
		c.logger.Debug("archived artifact",
			"name", a.Name,
			"class", a.Class,
			"rotated_at", a.RotatedAt,
		)
		return nil
	}

	if err := os.Remove(a.Path); err != nil {
		return fmt.Errorf("failed to remove %q: %w", a.Name, err)
	}
	report.Removed++
	report.BytesReclaimed += a.Size
	c.logger.Debug("removed artifact",
		"name", a.Name,
		"class", a.Class,
		"rotated_at", a.RotatedAt,
	)
	return nil
}
