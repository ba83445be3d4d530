package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

//go:embed assistant.yaml
var defaultKnowledge []byte

// 指令块占位符
const (
	PlaceholderContext = "{context}"
	PlaceholderQuery   = "{query}"
	PlaceholderMarker  = "{marker}"
)

// FeeLink 学费 PDF 规则
type FeeLink struct {
	Keyword string `yaml:"keyword"`
	URL     string `yaml:"url"`
	Label   string `yaml:"label"`
}

// Knowledge 助手静态知识：模糊关键词、意图表、链接文案与指令块
// 启动时加载一次，之后只读
type Knowledge struct {
	Version       string             `yaml:"version"`
	VagueKeywords domain.KeywordSet  `yaml:"vague_keywords"`
	Intents       domain.IntentTable `yaml:"intents"`
	LinkLabels    domain.LabelTable  `yaml:"link_labels"`
	FeeLink       FeeLink            `yaml:"fee_link"`
	Instruction   string             `yaml:"instruction"`
}

// LoadKnowledge 加载静态知识；path 为空时使用内置 assistant.yaml
func LoadKnowledge(path string) (*Knowledge, error) {
	data := defaultKnowledge
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read knowledge %s: %w", path, err)
		}
		data = b
	}
	return ParseKnowledge(data)
}

// ParseKnowledge 解析并校验知识 YAML
func ParseKnowledge(data []byte) (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse knowledge: %w", err)
	}
	k.normalize()
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return &k, nil
}

// NewKnowledge 按配置创建知识（wire provider）
func NewKnowledge(cfg *Config) (*Knowledge, error) {
	return LoadKnowledge(cfg.KnowledgePath)
}

// normalize 关键词统一小写
func (k *Knowledge) normalize() {
	for i, kw := range k.VagueKeywords {
		k.VagueKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	for i := range k.Intents {
		for j, kw := range k.Intents[i].Keywords {
			k.Intents[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	for i := range k.LinkLabels {
		for j, kw := range k.LinkLabels[i].Keywords {
			k.LinkLabels[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	k.FeeLink.Keyword = strings.ToLower(strings.TrimSpace(k.FeeLink.Keyword))
}

// Validate 校验指令块包含必需占位符
func (k *Knowledge) Validate() error {
	if k.Instruction == "" {
		return errors.New("knowledge: instruction block is empty")
	}
	for _, p := range []string{PlaceholderContext, PlaceholderQuery, PlaceholderMarker} {
		if !strings.Contains(k.Instruction, p) {
			return fmt.Errorf("knowledge: instruction block missing %s", p)
		}
	}
	for _, rule := range k.Intents {
		if len(rule.URLs) == 0 {
			return fmt.Errorf("knowledge: intent %q has no urls", rule.Label)
		}
	}
	return nil
}
