package assistant

import "strings"

// IntentRule 意图规则：关键词集合映射到规范 URL 列表
type IntentRule struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	URLs     []string `yaml:"urls" json:"urls"`
}

// Matches 判断小写查询是否包含任一关键词
func (r IntentRule) Matches(lowerQuery string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lowerQuery, kw) {
			return true
		}
	}
	return false
}

// FirstURL 返回第一个 URL，没有则返回空串
func (r IntentRule) FirstURL() string {
	if len(r.URLs) == 0 {
		return ""
	}
	return r.URLs[0]
}

// IntentTable 有序意图规则表，首个命中即返回
type IntentTable []IntentRule

// Match 返回第一个命中的规则
func (t IntentTable) Match(lowerQuery string) (IntentRule, bool) {
	for _, rule := range t {
		if rule.Matches(lowerQuery) {
			return rule, true
		}
	}
	return IntentRule{}, false
}

// LabelRule 关键词到链接文案的映射
type LabelRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Label    string   `yaml:"label" json:"label"`
}

// LabelTable 有序文案规则表
type LabelTable []LabelRule

// Match 返回第一个命中的文案
func (t LabelTable) Match(lowerQuery string) (string, bool) {
	for _, rule := range t {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lowerQuery, kw) {
				return rule.Label, true
			}
		}
	}
	return "", false
}

// KeywordSet 模糊关键词集合（子串匹配，保持配置顺序）
type KeywordSet []string

// ContainsAny 判断小写文本是否包含任一关键词
func (k KeywordSet) ContainsAny(lowerText string) bool {
	for _, kw := range k {
		if kw != "" && strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
