/*
Package config provides configuration loading and validation for Custodian.

Configuration is read from a YAML file, filled with defaults, overridden by
CUSTODIAN_* environment variables, and validated before use. The loading
sequence is:

 1. Load YAML from file
 2. Apply default values
 3. Apply environment variable overrides
 4. Validate final configuration

Basic usage:

	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
	if err != nil {
		log.Fatal(err)
	}
	days := cfg.GetRetentionDays("audit")

Application entry points use the singleton instead:

	if err := config.Initialize(cfgFile); err != nil {
		return err
	}
	cfg := config.GetConfig()

Retention periods are expressed as base days per log class scaled by a
per-environment multiplier, so a development deployment with multiplier 0.5
keeps audit logs for 45 days instead of the production 90.
*/
package config
