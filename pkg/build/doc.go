// Package build runs the grammar build pipeline and drives rebuilds
// from file changes.
//
// Pipeline chains the front end to the downstream compiler: it parses a
// grammar description, validates the typed grammar, invokes the
// compiler, and optionally archives the generated source. A description
// that fails to build or validate never reaches the compiler.
//
// Watcher pairs fsnotify with a per-file debouncer so that editor save
// bursts collapse into one rebuild per file.
package build
