package config

// Config is the root configuration structure for Custodian.
// It contains all configuration sections for the log directory, the external
// rotation engine, retention policy, archiving, the in-process scheduler,
// and telemetry settings.
type Config struct {
	// Environment is the deployment environment the service runs in.
	// It selects the retention multiplier applied to base retention days.
	// Options: "development", "production", "test"
	// Default: "production"
	Environment string `yaml:"environment"`

	// Logs contains configuration for the log directory shared with the
	// conversion service.
	Logs LogsConfig `yaml:"logs"`

	// Rotation contains configuration for invoking the external rotation
	// engine and its persisted state store.
	Rotation RotationConfig `yaml:"rotation"`

	// Retention contains the retention policy applied by the cleanup pass.
	Retention RetentionConfig `yaml:"retention"`

	// Archive contains configuration for archiving artifacts instead of
	// deleting them, including the SQLite archive index.
	Archive ArchiveConfig `yaml:"archive"`

	// Schedule contains configuration for the in-process scheduler daemon
	// (the "schedule" subcommand).
	Schedule ScheduleConfig `yaml:"schedule"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GetRetentionDays returns the environment-adjusted retention period for a
// log class: the class's base days (or the default) scaled by the
// environment's multiplier.
func (c *Config) GetRetentionDays(class string) int {
	base, ok := c.Retention.Days[class]
	if !ok {
		base = c.Retention.DefaultDays
	}
	multiplier, ok := c.Retention.Multipliers[c.Environment]
	if !ok {
		multiplier = 1.0
	}
	return int(float64(base) * multiplier)
}

// LogsConfig describes the log directory written by the conversion service.
type LogsConfig struct {
	// Directory is the directory containing live and rotated log files.
	// The live files are named "<class>_<environment>.log" and must never
	// be touched by the cleanup pass.
	// Default: "logs"
	Directory string `yaml:"directory"`

	// Classes are the log classes the service writes. Each class has its
	// own live file and its own retention period.
	// Default: ["app", "audit", "cli", "sql"]
	Classes []string `yaml:"classes"`
}

// RotationConfig describes how the external rotation engine is invoked.
// The engine is a black box: custodian passes it the rule file and the
// state file and interprets nothing but its exit status.
type RotationConfig struct {
	// EngineBinary is the path to the rotation engine executable.
	// Default: "/usr/sbin/logrotate"
	EngineBinary string `yaml:"engine_binary"`

	// RuleFile is the path to the rotation rule configuration consumed by
	// the engine. Owned by the container image, read-only at runtime.
	// Default: "/etc/logrotate.d/markhub"
	RuleFile string `yaml:"rule_file"`

	// StateFile is the path to the engine's persisted rotation state.
	// The parent directory must live on persistent storage and be owned by
	// a privileged identity distinct from the service runtime user.
	// Absence of the file itself on first run is not an error; the engine
	// initializes it.
	// Default: "/var/lib/custodian/rotation.state"
	StateFile string `yaml:"state_file"`

	// Verbose passes the engine's verbose flag through, echoing its
	// decisions into the coordinator's log stream.
	// Default: false
	Verbose bool `yaml:"verbose"`
}

// RetentionConfig contains the retention policy for rotated artifacts.
type RetentionConfig struct {
	// Days maps a log class to its base retention period in days.
	// Classes not listed fall back to DefaultDays.
	// Default: {"app": 30, "audit": 90, "cli": 30, "sql": 14}
	Days map[string]int `yaml:"days"`

	// DefaultDays is the base retention period for classes without an
	// explicit entry in Days.
	// Default: 30
	DefaultDays int `yaml:"default_days"`

	// Multipliers maps an environment name to a factor applied to base
	// retention days. Environments not listed use 1.0.
	// Default: {"development": 0.5, "production": 1.0, "test": 0.1}
	Multipliers map[string]float64 `yaml:"multipliers"`

	// MaxTotalSize bounds the combined size of rotated artifacts per the
	// whole log directory. When exceeded, the cleanup pass removes the
	// oldest artifacts first until under the bound. Accepts suffixed
	// values such as "500M" or "2G". Empty disables the size bound.
	// Default: "" (disabled)
	MaxTotalSize string `yaml:"max_total_size"`
}

// ArchiveConfig controls archiving of expired artifacts.
type ArchiveConfig struct {
	// Enabled moves expired artifacts into Directory instead of deleting
	// them, and records each move in the archive index.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Directory is where archived artifacts are moved.
	// Default: "data/archives"
	Directory string `yaml:"directory"`

	// IndexPath is the SQLite database file recording archived artifacts.
	// Default: "data/archives/index.db"
	IndexPath string `yaml:"index_path"`
}

// ScheduleConfig configures the in-process scheduler daemon.
type ScheduleConfig struct {
	// Cron is the cron expression for coordinator runs.
	// Example: "30 2 * * *" (daily at 02:30)
	// Default: "30 2 * * *"
	Cron string `yaml:"cron"`

	// ListenAddress is the address serving /metrics, /healthz and /readyz
	// in daemon mode.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// WatchConfig reloads the retention policy when the configuration file
	// changes on disk.
	// Default: false
	WatchConfig bool `yaml:"watch_config"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics collector.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "custodian"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "lifecycle"
	Subsystem string `yaml:"subsystem"`
}
