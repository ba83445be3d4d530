package assistant

import (
	"regexp"
	"strings"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// bulletPrefix 行首的列表符号或编号
var bulletPrefix = regexp.MustCompile(`^(?:[-*•–]+|\d+[.)])\s*`)

// ParseResponse 在第一个追问标记处拆分生成文本
// 追问只取第一个与第二个标记之间的部分
// 没有标记时整段作为主回答，追问为空；从不返回错误
func ParseResponse(text string) (mainAnswer string, followUps []string) {
	before, after, found := strings.Cut(text, domain.FollowUpMarker)
	mainAnswer = strings.TrimSpace(before)
	followUps = []string{}
	if !found {
		return mainAnswer, followUps
	}
	after, _, _ = strings.Cut(after, domain.FollowUpMarker)

	for _, line := range strings.Split(after, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line != "" {
			followUps = append(followUps, line)
		}
	}
	return mainAnswer, followUps
}
