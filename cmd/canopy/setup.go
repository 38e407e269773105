package main

import (
	"fmt"
	"log/slog"
	"os"

	"arbor-hq/canopy/pkg/config"
	"arbor-hq/canopy/pkg/telemetry/logging"
)

// loadRuntimeConfig resolves configuration for the build and watch
// commands. A missing default config file is not an error; an
// explicitly named file must exist.
func loadRuntimeConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to access config file %q: %w", cfgFile, err)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := cfg.Telemetry.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg)
}
