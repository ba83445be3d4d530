package handler

import (
	"context"
	"log/slog"
)

// AttrExtractor 从 context 中提取日志字段
type AttrExtractor func(ctx context.Context) []slog.Attr

// ContextHandler 包装任意 slog.Handler，在记录前追加 context 字段
type ContextHandler struct {
	next    slog.Handler
	extract AttrExtractor
}

// NewContextHandler 创建上下文日志处理器
func NewContextHandler(next slog.Handler, extract AttrExtractor) *ContextHandler {
	return &ContextHandler{next: next, extract: extract}
}

// Enabled 检查日志级别是否启用
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle 处理日志记录
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.extract != nil && ctx != nil {
		if attrs := h.extract(ctx); len(attrs) > 0 {
			r = r.Clone()
			r.AddAttrs(attrs...)
		}
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs 返回带有额外属性的处理器
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extract: h.extract}
}

// WithGroup 返回带有分组的处理器
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extract: h.extract}
}
