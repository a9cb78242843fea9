package config

// Default values for configuration fields.
const (
	// Environment defaults
	DefaultEnvironment = "production"

	// Logs defaults
	DefaultLogDirectory = "logs"

	// Rotation defaults
	DefaultRotationEngineBinary = "/usr/sbin/logrotate"
	DefaultRotationRuleFile     = "/etc/logrotate.d/markhub"
	DefaultRotationStateFile    = "/var/lib/custodian/rotation.state"

	// Retention defaults
	DefaultRetentionDays = 30

	// Archive defaults
	DefaultArchiveDirectory = "data/archives"
	DefaultArchiveIndexPath = "data/archives/index.db"

	// Schedule defaults
	DefaultScheduleCron          = "30 2 * * *"
	DefaultScheduleListenAddress = "127.0.0.1:9464"

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "custodian"
	DefaultMetricsSubsystem = "lifecycle"
)

// DefaultLogClasses are the log classes the conversion service writes.
func DefaultLogClasses() []string {
	return []string{"app", "audit", "cli", "sql"}
}

// DefaultRetentionDaysByClass returns the base retention period per class.
// Audit logs are kept longest to satisfy the service's audit requirements.
func DefaultRetentionDaysByClass() map[string]int {
	return map[string]int{
		"app":   30,
		"audit": 90,
		"cli":   30,
		"sql":   14,
	}
}

// DefaultRetentionMultipliers returns the per-environment factor applied to
// base retention days.
func DefaultRetentionMultipliers() map[string]float64 {
	return map[string]float64{
		"development": 0.5,
		"production":  1.0,
		"test":        0.1,
	}
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig.
func ApplyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	if cfg.Logs.Directory == "" {
		cfg.Logs.Directory = DefaultLogDirectory
	}
	if len(cfg.Logs.Classes) == 0 {
		cfg.Logs.Classes = DefaultLogClasses()
	}

	if cfg.Rotation.EngineBinary == "" {
		cfg.Rotation.EngineBinary = DefaultRotationEngineBinary
	}
	if cfg.Rotation.RuleFile == "" {
		cfg.Rotation.RuleFile = DefaultRotationRuleFile
	}
	if cfg.Rotation.StateFile == "" {
		cfg.Rotation.StateFile = DefaultRotationStateFile
	}

	if cfg.Retention.Days == nil {
		cfg.Retention.Days = DefaultRetentionDaysByClass()
	}
	if cfg.Retention.DefaultDays == 0 {
		cfg.Retention.DefaultDays = DefaultRetentionDays
	}
	if cfg.Retention.Multipliers == nil {
		cfg.Retention.Multipliers = DefaultRetentionMultipliers()
	}

	if cfg.Archive.Directory == "" {
		cfg.Archive.Directory = DefaultArchiveDirectory
	}
	if cfg.Archive.IndexPath == "" {
		cfg.Archive.IndexPath = DefaultArchiveIndexPath
	}

	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = DefaultScheduleCron
	}
	if cfg.Schedule.ListenAddress == "" {
		cfg.Schedule.ListenAddress = DefaultScheduleListenAddress
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
