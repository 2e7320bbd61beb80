// Package testutil provides shared test helpers, primarily a capturing
// slog handler for asserting on stage summary logging.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogRecord is one captured log entry
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is an slog.Handler that records every entry in memory
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogger returns a logger whose output is captured by the returned handler
func NewLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{}
	return slog.New(h), h
}

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler; tests capture every level
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler
func (h *CaptureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured entries
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ContainsMessage reports whether any entry at the given level contains the
// message substring.
func (h *CaptureHandler) ContainsMessage(level slog.Level, message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.Level == level && strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// Attr returns the attribute value from the first entry whose message
// contains the given substring.
func (h *CaptureHandler) Attr(message, key string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if strings.Contains(r.Message, message) {
			v, ok := r.Attrs[key]
			return v, ok
		}
	}
	return nil, false
}
