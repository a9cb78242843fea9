package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "rotation.rule_file").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateEnvironment(cfg.Environment)...)
	errs = append(errs, validateLogs(&cfg.Logs)...)
	errs = append(errs, validateRotation(&cfg.Rotation)...)
	errs = append(errs, validateRetention(&cfg.Retention)...)
	errs = append(errs, validateArchive(cfg)...)
	errs = append(errs, validateSchedule(&cfg.Schedule)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateEnvironment(env string) []FieldError {
	switch env {
	case "development", "production", "test":
		return nil
	}
	return []FieldError{{
		Field:   "environment",
		Message: fmt.Sprintf("must be one of development, production, test (got %q)", env),
	}}
}

func validateLogs(cfg *LogsConfig) []FieldError {
	var errs []FieldError

	if cfg.Directory == "" {
		errs = append(errs, FieldError{
			Field:   "logs.directory",
			Message: "must not be empty",
		})
	}
	for i, class := range cfg.Classes {
		if class == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("logs.classes[%d]", i),
				Message: "must not be empty",
			})
		}
		if strings.ContainsAny(class, "_/") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("logs.classes[%d]", i),
				Message: fmt.Sprintf("class %q must not contain '_' or '/'", class),
			})
		}
	}

	return errs
}

func validateRotation(cfg *RotationConfig) []FieldError {
	var errs []FieldError

	if cfg.EngineBinary == "" {
		errs = append(errs, FieldError{
			Field:   "rotation.engine_binary",
			Message: "must not be empty",
		})
	}
	if cfg.RuleFile == "" {
		errs = append(errs, FieldError{
			Field:   "rotation.rule_file",
			Message: "must not be empty",
		})
	}
	if cfg.StateFile == "" {
		errs = append(errs, FieldError{
			Field:   "rotation.state_file",
			Message: "must not be empty",
		})
	}

	return errs
}

func validateRetention(cfg *RetentionConfig) []FieldError {
	var errs []FieldError

	if cfg.DefaultDays < 0 {
		errs = append(errs, FieldError{
			Field:   "retention.default_days",
			Message: fmt.Sprintf("must not be negative (got %d)", cfg.DefaultDays),
		})
	}
	for class, days := range cfg.Days {
		if days < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("retention.days[%s]", class),
				Message: fmt.Sprintf("must not be negative (got %d)", days),
			})
		}
	}
	for env, mult := range cfg.Multipliers {
		if mult <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("retention.multipliers[%s]", env),
				Message: fmt.Sprintf("must be positive (got %g)", mult),
			})
		}
	}
	if cfg.MaxTotalSize != "" {
		if _, err := ParseSize(cfg.MaxTotalSize); err != nil {
			errs = append(errs, FieldError{
				Field:   "retention.max_total_size",
				Message: err.Error(),
			})
		}
	}

	return errs
}

func validateArchive(cfg *Config) []FieldError {
	var errs []FieldError

	if cfg.Archive.Enabled {
		if cfg.Archive.Directory == "" {
			errs = append(errs, FieldError{
				Field:   "archive.directory",
				Message: "must not be empty when archiving is enabled",
			})
		}
		if cfg.Archive.IndexPath == "" {
			errs = append(errs, FieldError{
				Field:   "archive.index_path",
				Message: "must not be empty when archiving is enabled",
			})
		}
	}

	return errs
}

func validateSchedule(cfg *ScheduleConfig) []FieldError {
	var errs []FieldError

	if cfg.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Cron); err != nil {
			errs = append(errs, FieldError{
				Field:   "schedule.cron",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Cron, err),
			})
		}
	}
	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "schedule.listen_address",
			Message: "must not be empty",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error (got %q)", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of json, text, console (got %q)", cfg.Logging.Format),
		})
	}

	return errs
}
