package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// teeHandler fans each record out to the console sink and the rotating file
// sink. Each sink keeps its own level, so the file can stay at info while the
// console runs at trace.
type teeHandler struct {
	sinks []slog.Handler
}

func newTee(sinks ...slog.Handler) *teeHandler {
	return &teeHandler{sinks: sinks}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(t.sinks, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

// Handle writes to every enabled sink. A failing file sink does not stop the
// console line; all sink errors are joined.
func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, h := range t.sinks {
		if !h.Enabled(ctx, r.Level) {
			continue
		}

		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}

	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *teeHandler) each(fn func(slog.Handler) slog.Handler) *teeHandler {
	sinks := make([]slog.Handler, len(t.sinks))
	for i, h := range t.sinks {
		sinks[i] = fn(h)
	}

	return newTee(sinks...)
}
