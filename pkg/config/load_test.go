package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, "environment: production\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Logs.Directory != DefaultLogDirectory {
		t.Errorf("Logs.Directory = %q, want %q", cfg.Logs.Directory, DefaultLogDirectory)
	}
	if cfg.Rotation.EngineBinary != DefaultRotationEngineBinary {
		t.Errorf("Rotation.EngineBinary = %q, want %q", cfg.Rotation.EngineBinary, DefaultRotationEngineBinary)
	}
	if cfg.Rotation.StateFile != DefaultRotationStateFile {
		t.Errorf("Rotation.StateFile = %q, want %q", cfg.Rotation.StateFile, DefaultRotationStateFile)
	}
	if cfg.Retention.DefaultDays != DefaultRetentionDays {
		t.Errorf("Retention.DefaultDays = %d, want %d", cfg.Retention.DefaultDays, DefaultRetentionDays)
	}
	if got := cfg.Retention.Days["audit"]; got != 90 {
		t.Errorf("Retention.Days[audit] = %d, want 90", got)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Telemetry.Metrics.Enabled should default to true")
	}
	if len(cfg.Logs.Classes) != 4 {
		t.Errorf("Logs.Classes = %v, want 4 default classes", cfg.Logs.Classes)
	}
}

func TestLoadConfig_ExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
environment: development
logs:
  directory: /var/log/markhub
  classes: [app, audit]
rotation:
  engine_binary: /usr/bin/logrotate
  rule_file: /etc/custodian/rules.conf
  state_file: /data/rotation.state
  verbose: true
retention:
  default_days: 14
  days:
    audit: 180
  max_total_size: 500M
telemetry:
  logging:
    level: debug
    format: json
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Logs.Directory != "/var/log/markhub" {
		t.Errorf("Logs.Directory = %q", cfg.Logs.Directory)
	}
	if !cfg.Rotation.Verbose {
		t.Error("Rotation.Verbose should be true")
	}
	if cfg.Retention.Days["audit"] != 180 {
		t.Errorf("Retention.Days[audit] = %d, want 180", cfg.Retention.Days["audit"])
	}
	if cfg.Retention.MaxTotalSize != "500M" {
		t.Errorf("Retention.MaxTotalSize = %q, want 500M", cfg.Retention.MaxTotalSize)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Telemetry.Metrics.Enabled should respect explicit false")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() should fail for a missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "logs: [unclosed\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() should fail for invalid YAML")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
environment: production
logs:
  directory: logs
`)

	t.Setenv("CUSTODIAN_ENVIRONMENT", "test")
	t.Setenv("CUSTODIAN_LOGS_DIRECTORY", "/tmp/markhub-logs")
	t.Setenv("CUSTODIAN_ROTATION_VERBOSE", "true")
	t.Setenv("CUSTODIAN_RETENTION_DEFAULT_DAYS", "7")
	t.Setenv("CUSTODIAN_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}

	if cfg.Environment != "test" {
		t.Errorf("Environment = %q, want test", cfg.Environment)
	}
	if cfg.Logs.Directory != "/tmp/markhub-logs" {
		t.Errorf("Logs.Directory = %q", cfg.Logs.Directory)
	}
	if !cfg.Rotation.Verbose {
		t.Error("Rotation.Verbose override not applied")
	}
	if cfg.Retention.DefaultDays != 7 {
		t.Errorf("Retention.DefaultDays = %d, want 7", cfg.Retention.DefaultDays)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Telemetry.Metrics.Enabled override not applied")
	}
}

func TestGetRetentionDays(t *testing.T) {
	cfg := &Config{
		Environment: "development",
		Retention: RetentionConfig{
			Days:        map[string]int{"audit": 90},
			DefaultDays: 30,
			Multipliers: map[string]float64{"development": 0.5, "production": 1.0},
		},
	}

	tests := []struct {
		name  string
		env   string
		class string
		want  int
	}{
		{"known class with multiplier", "development", "audit", 45},
		{"fallback class with multiplier", "development", "sql", 15},
		{"production multiplier", "production", "audit", 90},
		{"unknown environment keeps base", "staging", "audit", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Environment = tt.env
			if got := cfg.GetRetentionDays(tt.class); got != tt.want {
				t.Errorf("GetRetentionDays(%q) = %d, want %d", tt.class, got, tt.want)
			}
		})
	}
}
