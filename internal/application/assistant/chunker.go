package assistant

import (
	"errors"
	"fmt"
	"iter"
)

// Tokenizer 分词器，Decode(Encode(s)) 应还原 s
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// Chunk 一个 token 窗口，Tokens 覆盖原序列的 [Start, End)
type Chunk struct {
	Index  int
	Start  int
	End    int
	Tokens []int
	Text   string
}

// Chunker 按固定窗口和重叠切分文本
type Chunker struct {
	tokenizer Tokenizer
	maxTokens int
	stride    int
}

// NewChunker 创建切分器，要求 maxTokens > 0 且 0 <= stride < maxTokens
func NewChunker(tokenizer Tokenizer, maxTokens, stride int) (*Chunker, error) {
	if tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("maxTokens must be positive, got %d", maxTokens)
	}
	if stride < 0 || stride >= maxTokens {
		return nil, fmt.Errorf("stride must be in [0, %d), got %d", maxTokens, stride)
	}
	return &Chunker{tokenizer: tokenizer, maxTokens: maxTokens, stride: stride}, nil
}

// Chunk 返回可重复遍历的窗口序列
// 文本只分词一次；每个窗口从上一个起点前进 maxTokens-stride，最后一个窗口可能不足 maxTokens
func (c *Chunker) Chunk(text string) iter.Seq[Chunk] {
	tokens := c.tokenizer.Encode(text)
	step := c.maxTokens - c.stride

	return func(yield func(Chunk) bool) {
		index := 0
		for start := 0; start < len(tokens); start += step {
			end := min(start+c.maxTokens, len(tokens))
			window := tokens[start:end:end]
			chunk := Chunk{
				Index:  index,
				Start:  start,
				End:    end,
				Tokens: window,
				Text:   c.tokenizer.Decode(window),
			}
			if !yield(chunk) {
				return
			}
			index++
		}
	}
}

// Reconstruct 去掉相邻窗口的重叠部分，拼回原 token 序列
func Reconstruct(chunks []Chunk) []int {
	var out []int
	for _, ch := range chunks {
		skip := len(out) - ch.Start
		if skip < 0 {
			skip = 0
		}
		if skip < len(ch.Tokens) {
			out = append(out, ch.Tokens[skip:]...)
		}
	}
	return out
}
