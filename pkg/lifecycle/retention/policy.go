package retention

import (
	"fmt"
	"time"

	"markhub-hq/custodian/pkg/config"
)

// Policy decides which artifacts have outlived their retention period.
// Retention is expressed per log class as base days scaled by the
// environment multiplier, with an optional bound on the combined size of
// all rotated artifacts.
type Policy struct {
	cfg           *config.Config
	maxTotalBytes int64
}

// NewPolicy builds a Policy from configuration. It fails if the configured
// size bound cannot be parsed.
func NewPolicy(cfg *config.Config) (Policy, error) {
	var maxBytes int64
	if cfg.Retention.MaxTotalSize != "" {
		parsed, err := config.ParseSize(cfg.Retention.MaxTotalSize)
		if err != nil {
			return Policy{}, fmt.Errorf("retention.max_total_size: %w", err)
		}
		maxBytes = parsed
	}
	return Policy{cfg: cfg, maxTotalBytes: maxBytes}, nil
}

// RetentionDays returns the environment-adjusted retention period for a
// log class.
func (p Policy) RetentionDays(class string) int {
	return p.cfg.GetRetentionDays(class)
}

// CutoffFor returns the rotation-time cutoff for a class: artifacts rotated
// before it are expired.
func (p Policy) CutoffFor(class string, now time.Time) time.Time {
	return now.AddDate(0, 0, -p.RetentionDays(class))
}

// Expired reports whether the artifact has outlived its class's retention
// period at the given instant.
func (p Policy) Expired(a Artifact, now time.Time) bool {
	return a.RotatedAt.Before(p.CutoffFor(a.Class, now))
}

// MaxTotalBytes returns the size bound for the whole set of rotated
// artifacts, or 0 when unbounded.
func (p Policy) MaxTotalBytes() int64 {
	return p.maxTotalBytes
}
