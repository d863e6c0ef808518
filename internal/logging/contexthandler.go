// Package logging contains slog helpers for enriching log records with
// attributes carried in context.
package logging

import (
	"context"
	"fmt"
	"log/slog"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

// ContextHandler is a slog.Handler that merges attributes stored in context
// with WithAttrs into every record it handles.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler wraps the given handler in a ContextHandler.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds attributes stored in context with [WithAttrs] before delegating
// to the underlying handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("handle log record: %w", err)
	}
	return nil
}

// WithAttrs returns a new ContextHandler whose underlying handler carries the
// given attributes.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler whose underlying handler starts the
// given group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// WithAttrs stores slog attributes in the context so that ContextHandler adds
// them to every log record emitted with that context.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		attr = append(existing, attr...)
	}
	return context.WithValue(ctx, slogAttrs, attr)
}
