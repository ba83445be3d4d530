package assistant

import (
	"context"

	"github.com/stretchr/testify/mock"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// MockPassageIndex 模拟向量索引
type MockPassageIndex struct {
	mock.Mock
}

func (m *MockPassageIndex) NearestNeighbors(ctx context.Context, queryText string, k int) ([]domain.Passage, error) {
	args := m.Called(ctx, queryText, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passage), args.Error(1)
}

// MockGenerator 模拟生成服务
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// scorerFunc 函数式打分器
type scorerFunc func(ctx context.Context, query, passage string) (float64, error)

func (f scorerFunc) Score(ctx context.Context, query, passage string) (float64, error) {
	return f(ctx, query, passage)
}

// generatorFunc 函数式生成器
type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// runeTokenizer 每个 rune 一个 token，Decode 精确还原
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int {
	tokens := make([]int, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, int(r))
	}
	return tokens
}

func (runeTokenizer) Decode(tokens []int) string {
	runes := make([]rune, len(tokens))
	for i, t := range tokens {
		runes[i] = rune(t)
	}
	return string(runes)
}
