package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Options describes the logger assembly for a CLI process.
type Options struct {
	// Level sets the minimum level for all destinations.
	Level slog.Level
	// Format selects the console output format.
	Format Format
	// Console is the console destination. Defaults to os.Stderr if nil.
	Console io.Writer
	// FilePath, when non-empty, mirrors all records to the named file in
	// JSON format. The file is created if needed and appended to.
	FilePath string
}

// Setup builds the process logger from opts. The returned cleanup closes
// the log file mirror when one was opened; it is non-nil whenever the
// error is nil.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}

	var primary slog.Handler
	switch opts.Format {
	case FormatJSON:
		primary = slog.NewJSONHandler(console, hopts)
	default:
		primary = NewHandler(console, hopts)
	}

	cleanup := func() error { return nil }
	handlers := []slog.Handler{primary}

	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
		cleanup = f.Close
	}

	if len(handlers) == 1 {
		return slog.New(primary), cleanup, nil
	}
	return slog.New(NewMultiHandler(handlers...)), cleanup, nil
}

// MultiHandler dispatches records to multiple handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a new MultiHandler that dispatches to all provided handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports whether at least one of the underlying handlers is enabled for the given level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches the record to all enabled underlying handlers.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// WithAttrs returns a new MultiHandler where each underlying handler has the given attributes.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return NewMultiHandler(handlers...)
}

// WithGroup returns a new MultiHandler where each underlying handler has the given group.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return NewMultiHandler(handlers...)
}
