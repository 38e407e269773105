package compiler

import (
	"context"

	"arbor-hq/canopy/pkg/gdl/ast"
)

// Conflict describes a grammar conflict reported by the downstream
// compiler. Canopy does not detect conflicts itself; it only carries
// what the compiler reports.
type Conflict struct {
	Description string   `json:"description"`
	Symbols     []string `json:"symbols,omitempty"`
}

// Result is the downstream compiler's output: the generated parser
// source and any conflicts it reported. A Result with Conflicts is still
// a success; a fatal compiler failure is an error instead.
type Result struct {
	Code      string     `json:"code"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Compiler turns a validated grammar into generated parser source.
// Implementations are black boxes to the rest of Canopy: the pipeline
// only ever hands them fully-built grammars and forwards whatever they
// return.
//
// Implementations must be safe for concurrent use; the pipeline may run
// independent builds in parallel.
type Compiler interface {
	Compile(ctx context.Context, grammar *ast.Grammar) (*Result, error)
}

// Func adapts a plain function to the Compiler interface. Useful for
// tests and embedders that supply their own compilation step.
type Func func(ctx context.Context, grammar *ast.Grammar) (*Result, error)

// Compile implements Compiler.
func (f Func) Compile(ctx context.Context, grammar *ast.Grammar) (*Result, error) {
	return f(ctx, grammar)
}
