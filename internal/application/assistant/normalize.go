package assistant

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeQuery NFKC 归一化后转小写，用于关键词匹配
func normalizeQuery(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}
