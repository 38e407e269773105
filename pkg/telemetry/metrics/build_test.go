package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"arbor-hq/canopy/pkg/config"
)

func testMetricsConfig() config.MetricsConfig {
	return config.MetricsConfig{Namespace: "canopy"}
}

func TestBuildMetrics_RecordBuild(t *testing.T) {
	bm := NewCollector(testMetricsConfig()).Build

	bm.RecordBuild("words", StatusSuccess, 10*time.Millisecond)
	bm.RecordBuild("words", StatusSuccess, 20*time.Millisecond)
	bm.RecordBuild("words", StatusInvalid, time.Millisecond)

	if got := testutil.ToFloat64(bm.buildsTotal.WithLabelValues("words", StatusSuccess)); got != 2 {
		t.Errorf("builds_total{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(bm.buildsTotal.WithLabelValues("words", StatusInvalid)); got != 1 {
		t.Errorf("builds_total{invalid} = %v, want 1", got)
	}
}

func TestBuildMetrics_RecordConflicts(t *testing.T) {
	bm := NewCollector(testMetricsConfig()).Build

	bm.RecordConflicts("words", 3)
	bm.RecordConflicts("words", 0) // zero must not create a sample

	if got := testutil.ToFloat64(bm.conflictsTotal.WithLabelValues("words")); got != 3 {
		t.Errorf("compile_conflicts_total = %v, want 3", got)
	}
}

func TestBuildMetrics_RecordGrammarSize(t *testing.T) {
	bm := NewCollector(testMetricsConfig()).Build

	bm.RecordGrammarSize("words", 12)
	bm.RecordGrammarSize("words", 14)

	if got := testutil.ToFloat64(bm.grammarRules.WithLabelValues("words")); got != 14 {
		t.Errorf("grammar_rules = %v, want latest value 14", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testMetricsConfig())
	if collector.Handler() == nil {
		t.Error("Handler() = nil")
	}
	if collector.Registry() == nil {
		t.Error("Registry() = nil")
	}
}
