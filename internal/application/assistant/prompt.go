package assistant

import (
	"strings"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

// ContextSeparator 片段之间的分隔符
const ContextSeparator = "\n\n---\n\n"

// PromptAssembler 由静态指令块渲染提示词，相同输入总是得到相同输出
type PromptAssembler struct {
	instruction string
	version     string
}

// NewPromptAssembler 创建提示词组装器，追问标记在此处固定
func NewPromptAssembler(instruction, version string) *PromptAssembler {
	return &PromptAssembler{
		instruction: strings.ReplaceAll(instruction, config.PlaceholderMarker, domain.FollowUpMarker),
		version:     version,
	}
}

// Version 指令块版本
func (p *PromptAssembler) Version() string {
	return p.version
}

// Build 按检索顺序拼接片段并填入指令块
// 单次替换，片段中出现的占位符不会被再次展开
func (p *PromptAssembler) Build(passages domain.CandidateSet, effectiveQuery string) string {
	joined := strings.Join(passages.Texts(), ContextSeparator)
	return strings.NewReplacer(
		config.PlaceholderContext, joined,
		config.PlaceholderQuery, effectiveQuery,
	).Replace(p.instruction)
}
