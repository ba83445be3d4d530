package assistant

import (
	"fmt"
	"time"
)

// Phase 澄清状态机所处阶段
type Phase string

// 状态机阶段常量
const (
	PhaseIdle                  Phase = "idle"
	PhaseAwaitingClarification Phase = "awaiting_clarification"
)

// TransitionRule 本轮命中的转移规则
type TransitionRule string

// 转移规则常量，按求值顺序排列
const (
	RuleMerged      TransitionRule = "merged"      // 规则 1：合并上一轮的待澄清问题
	RuleAwaiting    TransitionRule = "awaiting"    // 规则 2：命中模糊关键词，进入待澄清
	RulePassthrough TransitionRule = "passthrough" // 规则 3：原样透传
)

// ConversationState 单个会话的澄清状态
// 每个会话唯一一份，绝不在会话之间共享
type ConversationState struct {
	ConversationID        string `json:"conversation_id"`
	PendingOriginalQuery  string `json:"pending_original_query,omitempty"`
	AwaitingClarification bool   `json:"awaiting_clarification"`
	UpdatedAt             int64  `json:"updated_at"`
}

// NewConversationState 创建处于 Idle 的会话状态
func NewConversationState(conversationID string) *ConversationState {
	return &ConversationState{
		ConversationID: conversationID,
		UpdatedAt:      time.Now().Unix(),
	}
}

// Phase 返回当前阶段
func (s ConversationState) Phase() Phase {
	if s.AwaitingClarification {
		return PhaseAwaitingClarification
	}
	return PhaseIdle
}

// Transition 一次状态转移的结果
// Next 是转移后的状态，调用方决定何时持久化
type Transition struct {
	EffectiveQuery string
	Rule           TransitionRule
	Next           ConversationState
}

// Resolve 根据当前状态和新消息计算有效查询与下一状态
// isVague 判断消息是否包含模糊关键词；接收者不会被修改
func (s ConversationState) Resolve(incoming string, isVague func(string) bool) Transition {
	next := s
	next.UpdatedAt = time.Now().Unix()

	if s.AwaitingClarification && s.PendingOriginalQuery != "" {
		next.PendingOriginalQuery = ""
		next.AwaitingClarification = false
		return Transition{
			EffectiveQuery: fmt.Sprintf("%s for %s", s.PendingOriginalQuery, incoming),
			Rule:           RuleMerged,
			Next:           next,
		}
	}

	if isVague != nil && isVague(incoming) {
		next.PendingOriginalQuery = incoming
		next.AwaitingClarification = true
		return Transition{
			EffectiveQuery: incoming,
			Rule:           RuleAwaiting,
			Next:           next,
		}
	}

	next.PendingOriginalQuery = ""
	next.AwaitingClarification = false
	return Transition{
		EffectiveQuery: incoming,
		Rule:           RulePassthrough,
		Next:           next,
	}
}
