package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"arbor-hq/canopy/pkg/compiler"
	"arbor-hq/canopy/pkg/gdl/ast"
	"arbor-hq/canopy/pkg/gdl/parser"
	"arbor-hq/canopy/pkg/gdl/validator"
	"arbor-hq/canopy/pkg/store"
	"arbor-hq/canopy/pkg/telemetry/metrics"
)

// Pipeline runs the full grammar build: parse, validate, compile, and
// optionally persist the artifact. A Pipeline is safe for concurrent
// use; each build call owns its own grammar tree and artifact.
type Pipeline struct {
	parser    *parser.Parser
	validator *validator.Validator
	compiler  compiler.Compiler
	store     store.Store
	metrics   *metrics.BuildMetrics
	logger    *slog.Logger
}

// PipelineConfig configures a build pipeline. Compiler is required;
// Store and Metrics are optional and skipped when nil.
type PipelineConfig struct {
	Compiler compiler.Compiler
	Store    store.Store
	Metrics  *metrics.BuildMetrics
	Logger   *slog.Logger
}

// Result is one successful build: the typed grammar, the generated
// source, and the conflicts the compiler reported.
type Result struct {
	// ID is the unique build identifier.
	ID string

	// Grammar is the validated typed grammar.
	Grammar *ast.Grammar

	// Code is the generated parser source.
	Code string

	// Conflicts is what the downstream compiler reported. A build with
	// conflicts still succeeds.
	Conflicts []compiler.Conflict

	// Duration is the full pipeline duration.
	Duration time.Duration
}

// NewPipeline creates a build pipeline.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Compiler == nil {
		return nil, fmt.Errorf("pipeline requires a compiler")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		parser:    parser.NewParser(),
		validator: validator.NewValidator(),
		compiler:  cfg.Compiler,
		store:     cfg.Store,
		metrics:   cfg.Metrics,
		logger:    logger.With("component", "build.pipeline"),
	}, nil
}

// BuildFile builds the grammar description file at path. The format is
// inferred from the file extension.
func (p *Pipeline) BuildFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file %q: %w", path, err)
	}
	return p.buildBytes(ctx, data, path, parser.FormatForPath(path))
}

// BuildBytes builds a JSON grammar description from memory.
func (p *Pipeline) BuildBytes(ctx context.Context, data []byte, sourcePath string) (*Result, error) {
	return p.buildBytes(ctx, data, sourcePath, parser.FormatJSON)
}

// buildBytes is the pipeline body. The compiler is never invoked unless
// the description built and validated; a failed description produces an
// error and nothing else.
func (p *Pipeline) buildBytes(ctx context.Context, data []byte, sourcePath string, format parser.Format) (*Result, error) {
	start := time.Now()
	label := sourceLabel(sourcePath)

	grammar, err := p.parser.ParseBytesAs(data, sourcePath, format)
	if err != nil {
		p.record(label, metrics.StatusInvalid, start)
		return nil, err
	}

	if err := p.validator.Validate(grammar); err != nil {
		p.record(grammar.Name, metrics.StatusInvalid, start)
		return nil, err
	}

	compiled, err := p.compiler.Compile(ctx, grammar)
	if err != nil {
		p.record(grammar.Name, metrics.StatusFailed, start)
		return nil, err
	}

	result := &Result{
		ID:        uuid.New().String(),
		Grammar:   grammar,
		Code:      compiled.Code,
		Conflicts: compiled.Conflicts,
		Duration:  time.Since(start),
	}

	if p.store != nil {
		artifact := &store.Artifact{
			ID:         result.ID,
			Grammar:    grammar.Name,
			SourceHash: hashSource(data),
			Code:       result.Code,
			Conflicts:  len(result.Conflicts),
			CreatedAt:  time.Now(),
		}
		if err := p.store.Save(ctx, artifact); err != nil {
			// The build itself succeeded; losing the archive copy is
			// not worth failing it.
			p.logger.Error("failed to persist build artifact",
				"grammar", grammar.Name,
				"build_id", result.ID,
				"error", err,
			)
		}
	}

	p.record(grammar.Name, metrics.StatusSuccess, start)
	if p.metrics != nil {
		p.metrics.RecordConflicts(grammar.Name, len(result.Conflicts))
		p.metrics.RecordGrammarSize(grammar.Name, len(grammar.Rules))
	}

	p.logger.Info("grammar built",
		"grammar", grammar.Name,
		"build_id", result.ID,
		"rules", len(grammar.Rules),
		"conflicts", len(result.Conflicts),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

func (p *Pipeline) record(grammar, status string, start time.Time) {
	if p.metrics != nil {
		p.metrics.RecordBuild(grammar, status, time.Since(start))
	}
}

// hashSource returns the hex SHA-256 of the source description bytes.
func hashSource(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// sourceLabel names a build whose grammar name is unknown because the
// description never parsed.
func sourceLabel(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
