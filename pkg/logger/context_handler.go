package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one request-scoped attribute (request id, client
// address) out of ctx. It reports false when ctx carries no value.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extracted attributes to each record it handles.
// A key the caller already set, on the record or through Logger.With,
// is not overwritten by an extractor.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	bound      map[string]struct{}
	grouped    bool
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	var clean []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx == nil {
		return h.next.Handle(ctx, rec)
	}

	var seen map[string]struct{}
	if !h.grouped {
		seen = make(map[string]struct{}, rec.NumAttrs())
		rec.Attrs(func(a slog.Attr) bool {
			seen[a.Key] = struct{}{}
			return true
		})
	}

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if _, dup := seen[attr.Key]; dup {
			continue
		}
		if _, dup := h.bound[attr.Key]; dup {
			continue
		}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	if !h.grouped {
		c.bound = make(map[string]struct{}, len(h.bound)+len(attrs))
		for k := range h.bound {
			c.bound[k] = struct{}{}
		}
		for _, a := range attrs {
			c.bound[a.Key] = struct{}{}
		}
	}
	return &c
}

// WithGroup nests subsequent attributes; extracted attributes land inside
// the group too, so key collisions with the caller can no longer occur.
func (h *contextHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.next = h.next.WithGroup(name)
	c.grouped = c.grouped || name != ""
	return &c
}
