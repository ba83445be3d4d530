package handler

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type key struct{}

func TestContextHandler_AddsAttrsFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := NewContextHandler(base, func(ctx context.Context) []slog.Attr {
		if v, ok := ctx.Value(key{}).(string); ok {
			return []slog.Attr{slog.String("request_id", v)}
		}
		return nil
	})

	logger := slog.New(h).With("module", "test")
	ctx := context.WithValue(context.Background(), key{}, "req-1")
	logger.InfoContext(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "module=test")
	assert.Contains(t, out, "hello")
}

func TestContextHandler_NoAttrsWithoutValue(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	h := NewContextHandler(base, func(ctx context.Context) []slog.Attr { return nil })

	slog.New(h).InfoContext(context.Background(), "plain")

	assert.NotContains(t, buf.String(), "request_id")
}
