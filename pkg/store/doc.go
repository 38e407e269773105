// Package store persists build artifacts: the generated parser source
// produced for each grammar, keyed by build ID and source content hash.
//
// The SQLite backend is the only implementation. It uses write-ahead
// logging and a single writer connection, which is plenty for a build
// tool. Retention is enforced by a Pruner (age and per-grammar count
// limits) that the watch daemon runs on a cron Scheduler.
package store
