package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Boolean fields that default to true must be prefilled so an absent
	// key keeps the default while an explicit "false" still wins.
	cfg := Config{
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CUSTODIAN_SECTION_FIELD (e.g., CUSTODIAN_LOGS_DIRECTORY) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format CUSTODIAN_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CUSTODIAN_ENVIRONMENT"); val != "" {
		cfg.Environment = val
	}

	// Logs overrides
	if val := os.Getenv("CUSTODIAN_LOGS_DIRECTORY"); val != "" {
		cfg.Logs.Directory = val
	}

	// Rotation overrides
	if val := os.Getenv("CUSTODIAN_ROTATION_ENGINE_BINARY"); val != "" {
		cfg.Rotation.EngineBinary = val
	}
	if val := os.Getenv("CUSTODIAN_ROTATION_RULE_FILE"); val != "" {
		cfg.Rotation.RuleFile = val
	}
	if val := os.Getenv("CUSTODIAN_ROTATION_STATE_FILE"); val != "" {
		cfg.Rotation.StateFile = val
	}
	if val := os.Getenv("CUSTODIAN_ROTATION_VERBOSE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Rotation.Verbose = b
		}
	}

	// Retention overrides
	if val := os.Getenv("CUSTODIAN_RETENTION_DEFAULT_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.DefaultDays = i
		}
	}
	if val := os.Getenv("CUSTODIAN_RETENTION_MAX_TOTAL_SIZE"); val != "" {
		cfg.Retention.MaxTotalSize = val
	}

	// Archive overrides
	if val := os.Getenv("CUSTODIAN_ARCHIVE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Archive.Enabled = b
		}
	}
	if val := os.Getenv("CUSTODIAN_ARCHIVE_DIRECTORY"); val != "" {
		cfg.Archive.Directory = val
	}
	if val := os.Getenv("CUSTODIAN_ARCHIVE_INDEX_PATH"); val != "" {
		cfg.Archive.IndexPath = val
	}

	// Schedule overrides
	if val := os.Getenv("CUSTODIAN_SCHEDULE_CRON"); val != "" {
		cfg.Schedule.Cron = val
	}
	if val := os.Getenv("CUSTODIAN_SCHEDULE_LISTEN_ADDRESS"); val != "" {
		cfg.Schedule.ListenAddress = val
	}
	if val := os.Getenv("CUSTODIAN_SCHEDULE_WATCH_CONFIG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Schedule.WatchConfig = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("CUSTODIAN_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CUSTODIAN_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CUSTODIAN_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
