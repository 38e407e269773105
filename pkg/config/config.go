package config

import "time"

// Config is the root configuration structure for Canopy.
// It covers the build pipeline, the artifact store, the watch daemon,
// and telemetry.
type Config struct {
	// Compiler configures the downstream compiler command.
	Compiler CompilerConfig `yaml:"compiler"`

	// Store configures the build artifact store.
	Store StoreConfig `yaml:"store"`

	// Watch configures the watch-and-rebuild daemon.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CompilerConfig configures the external compiler boundary.
type CompilerConfig struct {
	// Command is the compiler invocation: program followed by arguments.
	// The grammar is passed as canonical JSON on stdin; generated source
	// is read from stdout. Required for the build and watch commands.
	Command []string `yaml:"command"`

	// Timeout bounds one compile run.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig configures the SQLite artifact store.
type StoreConfig struct {
	// Enabled turns artifact persistence on.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Default: "canopy.db"
	Path string `yaml:"path"`

	// RetentionDays is the age beyond which artifacts are pruned.
	// Zero disables age-based pruning. Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxArtifacts caps the number of stored artifacts per grammar.
	// Zero disables count-based pruning. Default: 50
	MaxArtifacts int `yaml:"max_artifacts"`

	// PruneSchedule is a cron expression for scheduled pruning in the
	// watch daemon (e.g. "0 3 * * *" for daily at 3 AM). Empty disables
	// the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig configures the watch daemon.
type WatchConfig struct {
	// DebounceInterval is how long to wait after a file event before
	// rebuilding, so editor write bursts trigger one build.
	// Default: 200ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists the file extensions treated as grammar files.
	// Default: [".json", ".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: json or text.
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint of the watch
// daemon.
type MetricsConfig struct {
	// Enabled turns the metrics listener on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics listener address.
	// Default: "127.0.0.1:9180"
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	// Default: "canopy"
	Namespace string `yaml:"namespace"`
}

// Default values applied by ApplyDefaults.
const (
	DefaultCompilerTimeout  = 60 * time.Second
	DefaultStorePath        = "canopy.db"
	DefaultRetentionDays    = 30
	DefaultMaxArtifacts     = 50
	DefaultDebounceInterval = 200 * time.Millisecond
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsAddress   = "127.0.0.1:9180"
	DefaultMetricsNamespace = "canopy"
)

// DefaultExtensions lists the grammar file extensions watched by default.
var DefaultExtensions = []string{".json", ".yaml", ".yml"}

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Compiler.Timeout == 0 {
		cfg.Compiler.Timeout = DefaultCompilerTimeout
	}

	if cfg.Store.Enabled == nil {
		enabled := true
		cfg.Store.Enabled = &enabled
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.RetentionDays == 0 {
		cfg.Store.RetentionDays = DefaultRetentionDays
	}
	if cfg.Store.MaxArtifacts == 0 {
		cfg.Store.MaxArtifacts = DefaultMaxArtifacts
	}

	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultDebounceInterval
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultExtensions...)
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// StoreEnabled reports whether artifact persistence is on.
func (c *Config) StoreEnabled() bool {
	return c.Store.Enabled == nil || *c.Store.Enabled
}
