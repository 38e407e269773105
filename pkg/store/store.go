package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no artifact matches a query.
var ErrNotFound = errors.New("store: artifact not found")

// Artifact is one stored build result: the generated parser source for
// a grammar, keyed by a build ID and the content hash of the source
// description that produced it.
type Artifact struct {
	// ID is the unique build identifier (UUID).
	ID string

	// Grammar is the grammar's name.
	Grammar string

	// SourceHash is the SHA-256 of the source description bytes,
	// hex-encoded. Identical descriptions hash identically, so the hash
	// identifies what was compiled regardless of file path.
	SourceHash string

	// Code is the generated parser source.
	Code string

	// Conflicts is the number of conflicts the compiler reported.
	Conflicts int

	// CreatedAt is when the build completed.
	CreatedAt time.Time
}

// Store persists build artifacts. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save persists an artifact.
	Save(ctx context.Context, artifact *Artifact) error

	// Latest returns the most recent artifact for a grammar, or
	// ErrNotFound.
	Latest(ctx context.Context, grammar string) (*Artifact, error)

	// List returns up to limit artifacts for a grammar, newest first.
	// A grammar of "" lists across all grammars.
	List(ctx context.Context, grammar string, limit int) ([]*Artifact, error)

	// DeleteOlderThan removes artifacts created before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// TrimGrammar keeps only the newest max artifacts per grammar and
	// returns how many were deleted.
	TrimGrammar(ctx context.Context, max int) (int64, error)

	// Close releases the store's resources.
	Close() error
}
