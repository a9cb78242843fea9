package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle"
	"markhub-hq/custodian/pkg/lifecycle/retention"
)

// Collector holds the Prometheus metrics for lifecycle runs. It implements
// lifecycle.Recorder so the coordinator can feed it phase outcomes and
// cleanup reports without knowing about Prometheus.
//
// Metrics:
//   - custodian_lifecycle_runs_total: Phase executions by phase and outcome
//   - custodian_lifecycle_phase_duration_seconds: Phase duration histogram
//   - custodian_lifecycle_artifacts_removed_total: Artifacts deleted by cleanup
//   - custodian_lifecycle_artifacts_archived_total: Artifacts archived by cleanup
//   - custodian_lifecycle_bytes_reclaimed_total: Bytes reclaimed by cleanup
//   - custodian_lifecycle_last_success_timestamp_seconds: Last fully successful run
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	phaseDuration  *prometheus.HistogramVec
	removedTotal   prometheus.Counter
	archivedTotal  prometheus.Counter
	bytesReclaimed prometheus.Counter
	lastSuccess    prometheus.Gauge
}

// NewCollector creates a metrics collector registered against the given
// registry. If registry is nil, a fresh one is created, which keeps
// custodian's scrape surface free of the default Go collector noise.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of lifecycle phase executions by phase and outcome",
			},
			[]string{"phase", "outcome"},
		),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "phase_duration_seconds",
				Help:      "Duration of lifecycle phases in seconds",
				// Rotation of large logs can take a while.
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
			},
			[]string{"phase"},
		),

		removedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "artifacts_removed_total",
			Help:      "Total number of rotated artifacts removed by cleanup",
		}),

		archivedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "artifacts_archived_total",
			Help:      "Total number of rotated artifacts moved to the archive",
		}),

		bytesReclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "bytes_reclaimed_total",
			Help:      "Total bytes reclaimed by cleanup",
		}),

		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last fully successful lifecycle run",
		}),
	}

	registry.MustRegister(
		c.runsTotal,
		c.phaseDuration,
		c.removedTotal,
		c.archivedTotal,
		c.bytesReclaimed,
		c.lastSuccess,
	)

	return c
}

// ObservePhase records one phase execution. The outcome label is "success"
// for a zero status and "failure" otherwise; the numeric status stays in
// the logs, where per-code cardinality belongs.
func (c *Collector) ObservePhase(phase lifecycle.Phase, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	outcome := "success"
	if status != lifecycle.ExitSuccess {
		outcome = "failure"
	}

	c.runsTotal.WithLabelValues(string(phase), outcome).Inc()
	c.phaseDuration.WithLabelValues(string(phase)).Observe(duration.Seconds())

	if phase == lifecycle.PhaseCleanup && status == lifecycle.ExitSuccess {
		c.lastSuccess.SetToCurrentTime()
	}
}

// ObserveCleanup records the counts from one cleanup report.
func (c *Collector) ObserveCleanup(report retention.Report) {
	if !c.config.Enabled {
		return
	}

	c.removedTotal.Add(float64(report.Removed))
	c.archivedTotal.Add(float64(report.Archived))
	c.bytesReclaimed.Add(float64(report.BytesReclaimed))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
