// Package logging sets up Canopy's structured logging on top of
// log/slog. Logs go to stderr in text or JSON format so generated
// parser source written to stdout is never interleaved with log lines.
package logging
