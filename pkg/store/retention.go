package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetentionConfig configures artifact pruning.
type RetentionConfig struct {
	// RetentionDays is the number of days to retain artifacts.
	// 0 means keep artifacts forever.
	RetentionDays int

	// MaxArtifacts is the maximum number of artifacts to keep per
	// grammar. 0 means unlimited.
	MaxArtifacts int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	PruneSchedule string
}

// Pruner enforces the retention policy on stored artifacts.
type Pruner struct {
	store  Store
	config RetentionConfig
	logger *slog.Logger
}

// NewPruner creates a new retention pruner.
func NewPruner(store Store, config RetentionConfig, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		store:  store,
		config: config,
		logger: logger.With("component", "store.retention"),
	}
}

// Prune deletes artifacts older than the retention period, then trims
// each grammar down to the per-grammar cap. Either phase may be
// disabled by its zero value. Returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		if deleted > 0 {
			p.logger.Info("pruned artifacts by age",
				"deleted_count", deleted,
				"retention_days", p.config.RetentionDays,
			)
		}
	}

	if p.config.MaxArtifacts > 0 {
		deleted, err := p.store.TrimGrammar(ctx, p.config.MaxArtifacts)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		if deleted > 0 {
			p.logger.Info("pruned artifacts by count",
				"deleted_count", deleted,
				"max_artifacts", p.config.MaxArtifacts,
			)
		}
	}

	return totalDeleted, nil
}
