package assistant

import (
	"strings"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// FeeRule 学费问题附加官方 PDF 的规则
type FeeRule struct {
	Keyword string
	URL     string
	Label   string
}

// LinkAugmenter 根据意图表为回答附加链接，纯函数，不访问外部服务
type LinkAugmenter struct {
	intents domain.IntentTable
	labels  domain.LabelTable
	fee     FeeRule
}

// NewLinkAugmenter 创建链接增强器
func NewLinkAugmenter(intents domain.IntentTable, labels domain.LabelTable, fee FeeRule) *LinkAugmenter {
	return &LinkAugmenter{intents: intents, labels: labels, fee: fee}
}

// Attach 选择要附加的链接，没有合适链接时返回 nil
func (a *LinkAugmenter) Attach(query, answer string) *domain.Link {
	q := normalizeQuery(query)

	if a.fee.Keyword != "" && a.fee.URL != "" &&
		strings.Contains(q, a.fee.Keyword) &&
		!strings.Contains(strings.ToLower(answer), "pdf") {
		return &domain.Link{Label: a.fee.Label, URL: a.fee.URL}
	}

	rule, ok := a.intents.Match(q)
	if !ok {
		return nil
	}
	candidate := rule.FirstURL()
	if candidate == "" || strings.Contains(answer, candidate) {
		return nil
	}

	label, ok := a.labels.Match(q)
	if !ok {
		return nil
	}
	return &domain.Link{Label: label, URL: candidate}
}
