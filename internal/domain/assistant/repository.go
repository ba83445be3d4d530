package assistant

import "context"

// ConversationStore 会话状态仓库
// 实现必须按会话 ID 提供互斥：同一会话同一时刻只有一个持锁者
type ConversationStore interface {
	// Lock 获取会话独占锁，返回的 unlock 必须被调用
	Lock(ctx context.Context, conversationID string) (unlock func(), err error)
	// Load 读取会话状态，不存在时返回新的 Idle 状态
	Load(ctx context.Context, conversationID string) (*ConversationState, error)
	// Save 保存会话状态
	Save(ctx context.Context, state *ConversationState) error
	// Delete 结束会话并销毁状态
	Delete(ctx context.Context, conversationID string) error
}

// Interaction 问答交互记录
type Interaction struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	Query          string `json:"query"`          // 用户原始消息
	EffectiveQuery string `json:"effectiveQuery"` // 合并后的有效查询
	Outcome        string `json:"outcome"`        // answered / clarifying / fallback
	Reply          string `json:"reply"`
	FollowUpCount  int    `json:"followUpCount"`
	LinkURL        string `json:"linkUrl,omitempty"`
	LatencyMs      int64  `json:"latencyMs"`
	CreatedAt      int64  `json:"createdAt"`
}

// 交互结果常量
const (
	OutcomeAnswered   = "answered"
	OutcomeClarifying = "clarifying"
	OutcomeFallback   = "fallback"
)

// InteractionRepository 交互记录仓库
type InteractionRepository interface {
	Save(interaction *Interaction) error
	ListRecent(limit int) ([]*Interaction, error)
	CountByOutcome() (map[string]int, error)
}
