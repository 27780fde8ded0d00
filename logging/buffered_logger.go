package logging

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// BufferedLogHandler implements slog.Handler and captures log records in
// memory. It is meant for tests that want to inspect what a render reported
// without writing to stderr.
//
// Example usage:
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//
//	// ... render ...
//
//	if handler.Contains("rendering matrix") {
//	    // the renderer was reached
//	}
type BufferedLogHandler struct {
	level    slog.Leveler
	buffer   *bytes.Buffer
	mu       *sync.Mutex
	preAttrs []slog.Attr
	groups   []string
}

// NewBufferedLogHandler creates a BufferedLogHandler with an empty buffer.
// Pass nil for opts to capture all log levels, or provide HandlerOptions to
// filter by level.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{
		buffer: &bytes.Buffer{},
		mu:     &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Records are written as one text line each.
func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.buffer, "%s %s", r.Level, r.Message)
	for _, attr := range h.preAttrs {
		fmt.Fprintf(h.buffer, " %s", h.prefixed(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(h.buffer, " %s", h.prefixed(attr))
		return true
	})
	h.buffer.WriteByte('\n')
	return nil
}

func (h *BufferedLogHandler) prefixed(attr slog.Attr) string {
	if len(h.groups) == 0 {
		return attr.String()
	}
	return strings.Join(h.groups, ".") + "." + attr.String()
}

// WithAttrs implements slog.Handler.
func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.preAttrs), len(h.preAttrs)+len(attrs))
	copy(merged, h.preAttrs)
	merged = append(merged, attrs...)
	return &BufferedLogHandler{
		level:    h.level,
		buffer:   h.buffer,
		mu:       h.mu,
		preAttrs: merged,
		groups:   h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *BufferedLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, len(h.groups), len(h.groups)+1)
	copy(groups, h.groups)
	groups = append(groups, name)
	return &BufferedLogHandler{
		level:    h.level,
		buffer:   h.buffer,
		mu:       h.mu,
		preAttrs: h.preAttrs,
		groups:   groups,
	}
}

// String returns all captured log output.
func (h *BufferedLogHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.String()
}

// Reset clears all captured log output.
func (h *BufferedLogHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer.Reset()
}

// Contains reports whether the captured output contains the given substring.
func (h *BufferedLogHandler) Contains(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.Contains(h.buffer.Bytes(), []byte(s))
}
