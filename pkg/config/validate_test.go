package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{Environment: "production"}
	cfg.Telemetry.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate() failed for valid config: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantField string
	}{
		{
			name:      "bad environment",
			mutate:    func(cfg *Config) { cfg.Environment = "staging" },
			wantField: "environment",
		},
		{
			name:      "empty log directory",
			mutate:    func(cfg *Config) { cfg.Logs.Directory = "" },
			wantField: "logs.directory",
		},
		{
			name:      "class with underscore",
			mutate:    func(cfg *Config) { cfg.Logs.Classes = []string{"app_extra"} },
			wantField: "logs.classes[0]",
		},
		{
			name:      "empty engine binary",
			mutate:    func(cfg *Config) { cfg.Rotation.EngineBinary = "" },
			wantField: "rotation.engine_binary",
		},
		{
			name:      "empty state file",
			mutate:    func(cfg *Config) { cfg.Rotation.StateFile = "" },
			wantField: "rotation.state_file",
		},
		{
			name:      "negative retention days",
			mutate:    func(cfg *Config) { cfg.Retention.Days["app"] = -1 },
			wantField: "retention.days[app]",
		},
		{
			name:      "zero multiplier",
			mutate:    func(cfg *Config) { cfg.Retention.Multipliers["test"] = 0 },
			wantField: "retention.multipliers[test]",
		},
		{
			name:      "bad size string",
			mutate:    func(cfg *Config) { cfg.Retention.MaxTotalSize = "lots" },
			wantField: "retention.max_total_size",
		},
		{
			name: "archive enabled without index",
			mutate: func(cfg *Config) {
				cfg.Archive.Enabled = true
				cfg.Archive.IndexPath = ""
			},
			wantField: "archive.index_path",
		},
		{
			name:      "bad cron expression",
			mutate:    func(cfg *Config) { cfg.Schedule.Cron = "every day maybe" },
			wantField: "schedule.cron",
		},
		{
			name:      "bad log level",
			mutate:    func(cfg *Config) { cfg.Telemetry.Logging.Level = "loud" },
			wantField: "telemetry.logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not mention field %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidationError_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "staging"
	cfg.Logs.Directory = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(verr.Errors))
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("error %q should mention the error count", err.Error())
	}
}
