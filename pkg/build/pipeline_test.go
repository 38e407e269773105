package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arbor-hq/canopy/pkg/compiler"
	"arbor-hq/canopy/pkg/gdl/ast"
	"arbor-hq/canopy/pkg/store"
)

const validGrammar = `{
	"name": "words",
	"rules": {
		"start": {"type": "STRING", "value": "hello"}
	}
}`

const malformedGrammar = `{
	"name": "words",
	"rules": {
		"start": {"type": "TOKEN"}
	}
}`

const undefinedSymbolGrammar = `{
	"name": "words",
	"rules": {
		"start": {"type": "SYMBOL", "name": "ghost"}
	}
}`

// countingCompiler records how many times it was invoked.
type countingCompiler struct {
	calls int
	code  string
	err   error
}

func (c *countingCompiler) Compile(ctx context.Context, g *ast.Grammar) (*compiler.Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &compiler.Result{Code: c.code}, nil
}

// memStore is an in-memory Store for pipeline tests.
type memStore struct {
	saved []*store.Artifact
}

func (m *memStore) Save(ctx context.Context, a *store.Artifact) error {
	m.saved = append(m.saved, a)
	return nil
}

func (m *memStore) Latest(ctx context.Context, grammar string) (*store.Artifact, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Grammar == grammar {
			return m.saved[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) List(ctx context.Context, grammar string, limit int) ([]*store.Artifact, error) {
	return m.saved, nil
}

func (m *memStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *memStore) TrimGrammar(ctx context.Context, max int) (int64, error) {
	return 0, nil
}

func (m *memStore) Close() error { return nil }

func TestNewPipeline_RequiresCompiler(t *testing.T) {
	if _, err := NewPipeline(PipelineConfig{}); err == nil {
		t.Error("NewPipeline without compiler succeeded, want error")
	}
}

func TestPipeline_BuildBytes(t *testing.T) {
	comp := &countingCompiler{code: "// generated parser"}
	st := &memStore{}

	pipeline, err := NewPipeline(PipelineConfig{Compiler: comp, Store: st})
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}

	result, err := pipeline.BuildBytes(context.Background(), []byte(validGrammar), "words.json")
	if err != nil {
		t.Fatalf("BuildBytes() failed: %v", err)
	}

	if result.Grammar.Name != "words" {
		t.Errorf("Grammar.Name = %q, want %q", result.Grammar.Name, "words")
	}
	if result.Code != "// generated parser" {
		t.Errorf("Code = %q, want compiler output", result.Code)
	}
	if result.ID == "" {
		t.Error("result has no build ID")
	}
	if comp.calls != 1 {
		t.Errorf("compiler calls = %d, want 1", comp.calls)
	}

	if len(st.saved) != 1 {
		t.Fatalf("stored artifacts = %d, want 1", len(st.saved))
	}
	artifact := st.saved[0]
	if artifact.ID != result.ID {
		t.Errorf("artifact ID = %q, want build ID %q", artifact.ID, result.ID)
	}
	if artifact.Grammar != "words" {
		t.Errorf("artifact Grammar = %q, want %q", artifact.Grammar, "words")
	}
	if len(artifact.SourceHash) != 64 {
		t.Errorf("SourceHash = %q, want 64 hex characters", artifact.SourceHash)
	}
}

func TestPipeline_InvalidDescriptionNeverReachesCompiler(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown rule type", malformedGrammar},
		{"undefined symbol", undefinedSymbolGrammar},
		{"syntax error", "{ not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := &countingCompiler{}
			st := &memStore{}
			pipeline, err := NewPipeline(PipelineConfig{Compiler: comp, Store: st})
			if err != nil {
				t.Fatalf("NewPipeline() failed: %v", err)
			}

			result, err := pipeline.BuildBytes(context.Background(), []byte(tt.input), "bad.json")
			if err == nil {
				t.Fatal("BuildBytes() succeeded, want error")
			}
			if result != nil {
				t.Error("BuildBytes() returned result alongside error")
			}
			if comp.calls != 0 {
				t.Errorf("compiler calls = %d, want 0 for an invalid description", comp.calls)
			}
			if len(st.saved) != 0 {
				t.Errorf("stored artifacts = %d, want 0 for a failed build", len(st.saved))
			}
		})
	}
}

func TestPipeline_CompilerFailure(t *testing.T) {
	comp := &countingCompiler{err: context.DeadlineExceeded}
	st := &memStore{}
	pipeline, err := NewPipeline(PipelineConfig{Compiler: comp, Store: st})
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}

	_, err = pipeline.BuildBytes(context.Background(), []byte(validGrammar), "words.json")
	if err == nil {
		t.Fatal("BuildBytes() succeeded, want compiler error")
	}
	if len(st.saved) != 0 {
		t.Errorf("stored artifacts = %d, want 0 when the compiler fails", len(st.saved))
	}
}

func TestPipeline_BuildFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yaml")
	grammar := "name: words\nrules:\n  start:\n    type: STRING\n    value: hello\n"
	if err := os.WriteFile(path, []byte(grammar), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	comp := &countingCompiler{code: "ok"}
	pipeline, err := NewPipeline(PipelineConfig{Compiler: comp})
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}

	result, err := pipeline.BuildFile(context.Background(), path)
	if err != nil {
		t.Fatalf("BuildFile() failed: %v", err)
	}
	if result.Grammar.Name != "words" {
		t.Errorf("Grammar.Name = %q, want %q", result.Grammar.Name, "words")
	}
}

func TestPipeline_BuildFileMissing(t *testing.T) {
	pipeline, err := NewPipeline(PipelineConfig{Compiler: &countingCompiler{}})
	if err != nil {
		t.Fatalf("NewPipeline() failed: %v", err)
	}

	if _, err := pipeline.BuildFile(context.Background(), "no/such/grammar.json"); err == nil {
		t.Error("BuildFile() succeeded for missing file, want error")
	}
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"grammars/words.json", "words"},
		{"words.yaml", "words"},
		{"words", "words"},
	}
	for _, tt := range tests {
		if got := sourceLabel(tt.path); got != tt.want {
			t.Errorf("sourceLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
