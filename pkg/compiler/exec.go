package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"arbor-hq/canopy/pkg/gdl/ast"
	"arbor-hq/canopy/pkg/gdl/parser"
)

// External runs a host-configured compiler command. The grammar is
// written to the command's stdin as canonical JSON; stdout becomes the
// generated source. Stderr lines prefixed "conflict: " are collected as
// Conflict records, and a non-zero exit status is a fatal compile error.
type External struct {
	// Command is the compiler invocation: program followed by arguments.
	Command []string

	// Timeout bounds one compile run. Zero means no limit beyond the
	// caller's context.
	Timeout time.Duration
}

// conflictPrefix marks stderr lines that report a grammar conflict
// rather than a fatal condition.
const conflictPrefix = "conflict: "

// NewExternal creates an external compiler for the given command line.
func NewExternal(command []string, timeout time.Duration) (*External, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("compiler command cannot be empty")
	}
	return &External{Command: command, Timeout: timeout}, nil
}

// Compile implements Compiler.
func (e *External) Compile(ctx context.Context, grammar *ast.Grammar) (*Result, error) {
	input, err := parser.EncodeJSON(grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grammar %q: %w", grammar.Name, err)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("compiler timed out for grammar %q: %w", grammar.Name, ctx.Err())
		}
		return nil, fmt.Errorf("compiler failed for grammar %q: %w\n%s",
			grammar.Name, err, strings.TrimSpace(stderr.String()))
	}

	return &Result{
		Code:      stdout.String(),
		Conflicts: parseConflicts(stderr.String()),
	}, nil
}

// parseConflicts extracts conflict reports from the compiler's stderr.
func parseConflicts(stderr string) []Conflict {
	var conflicts []Conflict
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, conflictPrefix) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Description: strings.TrimPrefix(line, conflictPrefix),
		})
	}
	return conflicts
}
