package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks the configuration for inconsistent or unusable values.
// It returns the first problem found.
func Validate(cfg *Config) error {
	if cfg.Compiler.Timeout < 0 {
		return fmt.Errorf("compiler.timeout cannot be negative")
	}

	if cfg.StoreEnabled() && cfg.Store.Path == "" {
		return fmt.Errorf("store.path cannot be empty when the store is enabled")
	}
	if cfg.Store.RetentionDays < 0 {
		return fmt.Errorf("store.retention_days cannot be negative")
	}
	if cfg.Store.MaxArtifacts < 0 {
		return fmt.Errorf("store.max_artifacts cannot be negative")
	}

	if cfg.Watch.DebounceInterval < 0 {
		return fmt.Errorf("watch.debounce_interval cannot be negative")
	}
	for _, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch.extensions entry %q must start with a dot", ext)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is not one of debug, info, warn, error",
			cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format %q is not one of json, text",
			cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Telemetry.Metrics.ListenAddress); err != nil {
			return fmt.Errorf("telemetry.metrics.listen_address %q is not a valid host:port: %w",
				cfg.Telemetry.Metrics.ListenAddress, err)
		}
	}

	return nil
}
