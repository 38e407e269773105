package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence. It is
// suitable for single-instance deployments; write-ahead logging keeps
// reads concurrent with the single writer.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	closeOnce sync.Once

	saveStmt   *sql.Stmt
	latestStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore creates a new SQLite store with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig creates a new SQLite store with custom
// configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		dbPath: cfg.DBPath,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return s, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		grammar TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		code TEXT NOT NULL,
		conflicts INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_grammar ON artifacts(grammar, created_at);
	CREATE INDEX IF NOT EXISTS idx_artifacts_created ON artifacts(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements pre-compiles the hot-path statements.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(`
		INSERT INTO artifacts (id, grammar, source_hash, code, conflicts, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare save: %w", err)
	}

	s.latestStmt, err = s.db.Prepare(`
		SELECT id, grammar, source_hash, code, conflicts, created_at
		FROM artifacts WHERE grammar = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`)
	if err != nil {
		return fmt.Errorf("prepare latest: %w", err)
	}

	return nil
}

// Save persists an artifact.
func (s *SQLiteStore) Save(ctx context.Context, artifact *Artifact) error {
	if artifact.ID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}

	_, err := s.saveStmt.ExecContext(ctx,
		artifact.ID,
		artifact.Grammar,
		artifact.SourceHash,
		artifact.Code,
		artifact.Conflicts,
		artifact.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", artifact.ID, err)
	}
	return nil
}

// Latest returns the most recent artifact for a grammar.
func (s *SQLiteStore) Latest(ctx context.Context, grammar string) (*Artifact, error) {
	row := s.latestStmt.QueryRowContext(ctx, grammar)

	artifact, err := scanArtifact(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest artifact for %q: %w", grammar, err)
	}
	return artifact, nil
}

// List returns up to limit artifacts, newest first.
func (s *SQLiteStore) List(ctx context.Context, grammar string, limit int) ([]*Artifact, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, grammar, source_hash, code, conflicts, created_at
		FROM artifacts`
	args := []any{}
	if grammar != "" {
		query += ` WHERE grammar = ?`
		args = append(args, grammar)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, rows.Err()
}

// DeleteOlderThan removes artifacts created before the cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM artifacts WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old artifacts: %w", err)
	}
	return res.RowsAffected()
}

// TrimGrammar keeps only the newest max artifacts per grammar.
func (s *SQLiteStore) TrimGrammar(ctx context.Context, max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM artifacts WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY grammar ORDER BY created_at DESC, id DESC
				) AS rn FROM artifacts
			) WHERE rn > ?
		)`, max)
	if err != nil {
		return 0, fmt.Errorf("failed to trim artifacts: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.saveStmt != nil {
			s.saveStmt.Close()
		}
		if s.latestStmt != nil {
			s.latestStmt.Close()
		}
		err = s.db.Close()
	})
	return err
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (*Artifact, error) {
	var artifact Artifact
	var createdAt int64

	err := row.Scan(
		&artifact.ID,
		&artifact.Grammar,
		&artifact.SourceHash,
		&artifact.Code,
		&artifact.Conflicts,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	artifact.CreatedAt = time.Unix(0, createdAt)
	return &artifact, nil
}
