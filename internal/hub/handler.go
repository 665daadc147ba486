package hub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LogHandler is a slog.Handler that mirrors records to the hub client,
// so engine components keep logging through a plain *slog.Logger while
// the hub sees every line. Records also reach the wrapped local
// handler.
type LogHandler struct {
	client *Client
	next   slog.Handler
	attrs  []slog.Attr
}

// NewLogHandler wraps next with hub mirroring.
func NewLogHandler(client *Client, next slog.Handler) *LogHandler {
	return &LogHandler{client: client, next: next}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandler) Handle(ctx context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(rec.Message)
	appendAttr := func(a slog.Attr) {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value.Any())
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})
	h.client.SendLog(wireLevel(rec.Level), sb.String())
	return h.next.Handle(ctx, rec)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogHandler{client: h.client, next: h.next.WithAttrs(attrs), attrs: merged}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{client: h.client, next: h.next.WithGroup(name), attrs: h.attrs}
}

func wireLevel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}
