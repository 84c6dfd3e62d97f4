// Package logging provides the pipeline's leveled logger. Log lines go
// to pipeline.log in the run's log directory and are mirrored to stderr,
// matching the dual file/stream setup the downstream tooling expects.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger wraps the standard logger with level prefixes, a verbose gate
// for debug output, and a warning counter.
type Logger struct {
	std     *log.Logger
	verbose bool

	mu       sync.Mutex
	warnings int
}

// New creates a Logger writing to w.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		std:     log.New(w, "", log.LstdFlags),
		verbose: verbose,
	}
}

// Open creates the log directory, opens (or appends to) pipeline.log
// inside it, and returns a Logger that writes to both the file and
// stderr. The returned func closes the file.
func Open(logDir string, verbose bool) (*Logger, func() error, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, "pipeline.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(io.MultiWriter(f, os.Stderr), verbose), f.Close, nil
}

// Discard returns a Logger that drops everything. Useful in tests that
// only care about return values.
func Discard() *Logger {
	return New(io.Discard, false)
}

// Debugf logs only when verbose mode is on.
func (l *Logger) Debugf(format string, args ...any) {
	if l.verbose {
		l.std.Printf("DEBUG "+format, args...)
	}
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.std.Printf("INFO "+format, args...)
}

// Warnf logs a warning and increments the warning counter.
func (l *Logger) Warnf(format string, args ...any) {
	l.mu.Lock()
	l.warnings++
	l.mu.Unlock()
	l.std.Printf("WARN "+format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf("ERROR "+format, args...)
}

// Warnings reports how many warnings have been logged.
func (l *Logger) Warnings() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warnings
}
