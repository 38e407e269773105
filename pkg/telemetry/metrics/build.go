package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"arbor-hq/canopy/pkg/config"
)

// Build outcome labels.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid" // description failed to build or validate
	StatusFailed  = "failed"  // downstream compiler reported a fatal error
)

// BuildMetrics tracks grammar build pipeline metrics.
//
// Metrics:
//   - canopy_builds_total: builds by grammar and status
//   - canopy_build_duration_seconds: full pipeline duration
//   - canopy_compile_conflicts_total: conflicts reported by the compiler
//   - canopy_grammar_rules: rule count of the last successful build
type BuildMetrics struct {
	buildsTotal    *prometheus.CounterVec
	buildDuration  *prometheus.HistogramVec
	conflictsTotal *prometheus.CounterVec
	grammarRules   *prometheus.GaugeVec
}

// NewBuildMetrics creates and registers build metrics with the provided
// registry.
func NewBuildMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *BuildMetrics {
	bm := &BuildMetrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "builds_total",
				Help:      "Total number of grammar builds",
			},
			[]string{"grammar", "status"},
		),

		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of the full build pipeline in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"grammar"},
		),

		conflictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "compile_conflicts_total",
				Help:      "Total number of conflicts reported by the downstream compiler",
			},
			[]string{"grammar"},
		),

		grammarRules: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "grammar_rules",
				Help:      "Rule count of the last successfully built grammar",
			},
			[]string{"grammar"},
		),
	}

	registry.MustRegister(
		bm.buildsTotal,
		bm.buildDuration,
		bm.conflictsTotal,
		bm.grammarRules,
	)

	return bm
}

// RecordBuild records one completed build attempt.
func (bm *BuildMetrics) RecordBuild(grammar, status string, duration time.Duration) {
	bm.buildsTotal.WithLabelValues(grammar, status).Inc()
	bm.buildDuration.WithLabelValues(grammar).Observe(duration.Seconds())
}

// RecordConflicts records conflicts reported for a grammar.
func (bm *BuildMetrics) RecordConflicts(grammar string, count int) {
	if count > 0 {
		bm.conflictsTotal.WithLabelValues(grammar).Add(float64(count))
	}
}

// RecordGrammarSize records the rule count of a built grammar.
func (bm *BuildMetrics) RecordGrammarSize(grammar string, rules int) {
	bm.grammarRules.WithLabelValues(grammar).Set(float64(rules))
}
