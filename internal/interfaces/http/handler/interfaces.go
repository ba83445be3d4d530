package handler

import (
	"context"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// Assistant 问答服务
type Assistant interface {
	Ask(ctx context.Context, conversationID, message string) (*domain.AnswerResult, error)
	EndConversation(ctx context.Context, conversationID string) error
}

// InteractionReader 交互记录查询
type InteractionReader interface {
	RecentInteractions(limit int) ([]*domain.Interaction, error)
	InteractionStats() (map[string]int, error)
}
