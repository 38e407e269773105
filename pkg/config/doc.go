// Package config loads and validates Canopy's YAML configuration.
//
// Configuration is layered: file values, then defaults for anything
// unset, then CANOPY_* environment variable overrides, then validation.
// A missing config file is not an error for commands that can run on
// defaults; DefaultConfig covers that path.
//
// Example configuration:
//
//	compiler:
//	  command: ["tsc-compile", "--target", "c"]
//	  timeout: 60s
//	store:
//	  path: canopy.db
//	  retention_days: 30
//	  max_artifacts: 50
//	  prune_schedule: "0 3 * * *"
//	watch:
//	  debounce_interval: 200ms
//	  extensions: [".json", ".yaml"]
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9180
package config
