// Package logger provides structured logging for chainmap tools.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and global default
//   - context.go: Context-aware logging with run IDs
//   - redact.go: Redaction of stored values
//   - observer.go: Rehash notifications from hashmap.Map as log records
//
// The hashmap and dictionary packages never log; tools attach a logger
// through hashmap.WithObserver.
package logger
