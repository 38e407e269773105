package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns
// any errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention CANOPY_SECTION_FIELD (e.g. CANOPY_STORE_PATH) and always
// take precedence over file-based configuration.
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

// DefaultConfig returns a configuration with all defaults applied and
// environment overrides honored. Used when no config file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

// applyEnvOverrides applies CANOPY_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CANOPY_COMPILER_COMMAND"); val != "" {
		cfg.Compiler.Command = strings.Fields(val)
	}
	if val := os.Getenv("CANOPY_COMPILER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Compiler.Timeout = d
		}
	}

	if val := os.Getenv("CANOPY_STORE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.Enabled = &b
		}
	}
	if val := os.Getenv("CANOPY_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("CANOPY_STORE_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Store.RetentionDays = n
		}
	}
	if val := os.Getenv("CANOPY_STORE_MAX_ARTIFACTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Store.MaxArtifacts = n
		}
	}
	if val := os.Getenv("CANOPY_STORE_PRUNE_SCHEDULE"); val != "" {
		cfg.Store.PruneSchedule = val
	}

	if val := os.Getenv("CANOPY_WATCH_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.DebounceInterval = d
		}
	}

	if val := os.Getenv("CANOPY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CANOPY_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CANOPY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CANOPY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
