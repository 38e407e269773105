package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"arbor-hq/canopy/pkg/build"
	"arbor-hq/canopy/pkg/cli"
	"arbor-hq/canopy/pkg/compiler"
	"arbor-hq/canopy/pkg/config"
	"arbor-hq/canopy/pkg/store"
	"arbor-hq/canopy/pkg/telemetry/metrics"
)

var watchFlags struct {
	outputDir string
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Rebuild grammars on file changes",
	Long: `Watch a grammar description file or directory and rebuild on every
change.

Each changed file runs through the full build pipeline. Successful
builds are archived in the artifact store; failures are logged and the
daemon keeps watching. With --output-dir, generated source is also
written next to the watched grammars.

The daemon serves Prometheus metrics when telemetry.metrics.enabled is
set, and prunes old artifacts on the configured cron schedule.

Examples:
  # Watch a directory of grammars
  canopy watch grammars/

  # Watch one file and write generated source
  canopy watch grammar.json --output-dir gen/`,
	Args: cobra.ExactArgs(1),
	RunE: watchGrammars,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.outputDir, "output-dir", "", "directory for generated source files")
}

func watchGrammars(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if len(cfg.Compiler.Command) == 0 {
		return fmt.Errorf("no compiler command configured; set compiler.command")
	}
	comp, err := compiler.NewExternal(cfg.Compiler.Command, cfg.Compiler.Timeout)
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	var (
		artifacts store.Store
		scheduler *store.Scheduler
	)
	if cfg.StoreEnabled() {
		sqliteStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open artifact store: %w", err)
		}
		defer sqliteStore.Close()
		artifacts = sqliteStore

		pruner := store.NewPruner(sqliteStore, store.RetentionConfig{
			RetentionDays: cfg.Store.RetentionDays,
			MaxArtifacts:  cfg.Store.MaxArtifacts,
			PruneSchedule: cfg.Store.PruneSchedule,
		}, logger)

		scheduler = store.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	var buildMetrics *metrics.BuildMetrics
	if cfg.Telemetry.Metrics.Enabled {
		collector := metrics.NewCollector(cfg.Telemetry.Metrics)
		buildMetrics = collector.Build

		srv := startMetricsServer(cfg.Telemetry.Metrics, collector, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	pipeline, err := build.NewPipeline(build.PipelineConfig{
		Compiler: comp,
		Store:    artifacts,
		Metrics:  buildMetrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	rebuild := func(path string) {
		result, err := pipeline.BuildFile(ctx, path)
		if err != nil {
			logger.Error("build failed", "path", path, "error", err)
			return
		}
		if watchFlags.outputDir != "" {
			if err := writeGenerated(watchFlags.outputDir, path, result.Code); err != nil {
				logger.Error("failed to write generated source", "path", path, "error", err)
			}
		}
	}

	// Build everything once before watching so the archive reflects the
	// current state of the tree.
	targets, err := grammarFiles(args[0], cfg.Watch.Extensions)
	if err != nil {
		return err
	}
	for _, target := range targets {
		rebuild(target)
	}

	watcher, err := build.NewWatcher(build.WatcherConfig{
		Path:             args[0],
		Extensions:       cfg.Watch.Extensions,
		DebounceInterval: cfg.Watch.DebounceInterval,
		Logger:           logger,
	}, rebuild)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("watch daemon stopped")
	return nil
}

// grammarFiles lists the grammar description files a watch target
// covers: the file itself, or every matching file in the directory.
func grammarFiles(path string, extensions []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access watch path %q: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch directory %q: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if len(allowed) == 0 || allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

// writeGenerated writes generated source to dir, named after the source
// file with a .c extension.
func writeGenerated(dir, sourcePath, code string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := filepath.Base(sourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".c"
	return os.WriteFile(filepath.Join(dir, name), []byte(code), 0o644)
}

func startMetricsServer(cfg config.MetricsConfig, collector *metrics.Collector, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listener started", "address", cfg.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	return srv
}
