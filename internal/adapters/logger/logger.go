// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/prebuild/internal/ui/style"
)

// messager is implemented by zerr errors, which can report their own message
// without the cause chain.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors carrying key-value context.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, keeping the current format.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging, keeping the current output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild must be called with the write lock held, or before the logger is shared.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. Joined errors are logged one block per error.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			l.Error(e)
		}
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", jsonAttrs(err)...)
		return
	}

	l.logger.Error(renderChain(collectChain(err)))
}

type chainEntry struct {
	message  string
	metadata map[string]any
}

// collectChain walks the zerr chain. Entries without a message only carry
// metadata, which is attached to the next entry that has one.
func collectChain(err error) []chainEntry {
	var (
		entries []chainEntry
		pending map[string]any
	)

	for current := err; current != nil; {
		meta := metadataOf(current)
		if pending != nil {
			for k, v := range meta {
				pending[k] = v
			}
			meta = pending
			pending = nil
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, chainEntry{message: current.Error(), metadata: meta})
			break
		}
		if m.Message() == "" {
			pending = meta
			if pending == nil {
				pending = make(map[string]any)
			}
		} else {
			entries = append(entries, chainEntry{message: m.Message(), metadata: meta})
		}
		current = errors.Unwrap(current)
	}

	if len(pending) > 0 && len(entries) > 0 {
		last := &entries[len(entries)-1]
		if last.metadata == nil {
			last.metadata = make(map[string]any)
		}
		for k, v := range pending {
			last.metadata[k] = v
		}
	}
	return entries
}

func renderChain(entries []chainEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")

		prefix, indent := "    "+style.Arrow+" ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, kv := range sortedMetadata(entry.metadata) {
			lines = append(lines, indent+kv)
		}
	}

	return strings.Join(lines, "\n")
}

func metadataOf(err error) map[string]any {
	m, ok := err.(metadataer)
	if !ok {
		return nil
	}
	meta := m.Metadata()
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func sortedMetadata(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %v", k, meta[k]))
	}
	return out
}

func jsonAttrs(err error) []any {
	attrs := []any{"error", err.Error()}
	for _, entry := range collectChain(err) {
		keys := make([]string, 0, len(entry.metadata))
		for k := range entry.metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			attrs = append(attrs, k, entry.metadata[k])
		}
	}
	return attrs
}
