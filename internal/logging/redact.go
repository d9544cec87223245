package logging

import (
	"context"
	"log/slog"
)

// Redaction is the value substituted for sensitive attributes.
const Redaction = "***"

// SensitiveFields are the attribute keys masked by default: credentials and
// live bearer tokens must never reach a log sink in the clear.
var SensitiveFields = []string{
	"password",
	"new_password",
	"hashed_password",
	"session_id",
	"reset_token",
	"email",
}

// RedactingHandler is an slog.Handler decorator that replaces the values of
// configured attribute keys with Redaction before delegating to the inner
// handler. Group attributes are walked recursively.
type RedactingHandler struct {
	inner  slog.Handler
	fields map[string]struct{}
}

// NewRedactingHandler wraps inner so that every attribute whose key is in
// fields is masked. With no fields it masks SensitiveFields.
func NewRedactingHandler(inner slog.Handler, fields ...string) *RedactingHandler {
	if len(fields) == 0 {
		fields = SensitiveFields
	}
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return &RedactingHandler{inner: inner, fields: m}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.redact(a))
		return true
	})
	return h.inner.Handle(ctx, nr)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.redact(a)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(masked), fields: h.fields}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), fields: h.fields}
}

func (h *RedactingHandler) redact(a slog.Attr) slog.Attr {
	if _, ok := h.fields[a.Key]; ok {
		return slog.String(a.Key, Redaction)
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]any, 0, len(group))
		for _, g := range group {
			masked = append(masked, h.redact(g))
		}
		return slog.Group(a.Key, masked...)
	}
	return a
}
