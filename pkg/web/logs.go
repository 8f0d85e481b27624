package web

import (
	"context"
	"log/slog"
	"strings"
)

type logHandler struct {
	next   slog.Handler
	s      *Server
	prefix string
}

// LogHandler returns a handler that writes to next and mirrors each record
// to the dashboard log. Do not give it to the server's own logger: hub
// diagnostics would feed back into the log hub.
func (s *Server) LogHandler(next slog.Handler) slog.Handler {
	return &logHandler{next: next, s: s}
}

func (h *logHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *logHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(h.prefix)
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
		return true
	})
	h.s.AddLog(strings.ToLower(r.Level.String()), b.String())
	return h.next.Handle(ctx, r)
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{next: h.next.WithAttrs(attrs), s: h.s, prefix: h.prefix}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{next: h.next.WithGroup(name), s: h.s, prefix: h.prefix + name + "."}
}
