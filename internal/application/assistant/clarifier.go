package assistant

import (
	domain "github.com/puassist/backend/internal/domain/assistant"
)

// Clarifier 澄清状态机：判断模糊查询并合并澄清回复
type Clarifier struct {
	keywords domain.KeywordSet
}

// NewClarifier 创建澄清器
func NewClarifier(keywords domain.KeywordSet) *Clarifier {
	lowered := make(domain.KeywordSet, len(keywords))
	for i, kw := range keywords {
		lowered[i] = normalizeQuery(kw)
	}
	return &Clarifier{keywords: lowered}
}

// IsVague 查询是否包含模糊关键词（大小写与全半角不敏感）
func (c *Clarifier) IsVague(text string) bool {
	return c.keywords.ContainsAny(normalizeQuery(text))
}

// Resolve 计算本轮有效查询与下一状态，不修改传入状态
func (c *Clarifier) Resolve(state domain.ConversationState, incoming string) domain.Transition {
	return state.Resolve(incoming, c.IsVague)
}
