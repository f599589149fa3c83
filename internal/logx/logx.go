// Package logx wraps log/slog for the soft-failure logging spec.md §7.2
// requires: ambiguous lookups, unresolved references, and malformed AST
// fragments are warned or debugged, never treated as fatal.
package logx

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	current = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// SetDefault replaces the package logger, e.g. so cmd/llmcc can wire JSON
// output or a different level.
func SetDefault(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Warn logs an analysis soft-failure (spec.md §7.2 category 2): symbol not
// resolvable, ambiguous lookup, malformed AST fragment.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Debug logs diagnostic detail below warn severity.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Error logs an input error (spec.md §7.2 category 1) before the pipeline
// aborts.
func Error(msg string, args ...any) { get().Error(msg, args...) }
