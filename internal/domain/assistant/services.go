package assistant

import "context"

// PassageIndex 向量索引服务（嵌入查询并做近邻检索）
type PassageIndex interface {
	NearestNeighbors(ctx context.Context, queryText string, k int) ([]Passage, error)
}

// Scorer 交叉编码器打分服务，纯函数、无状态
type Scorer interface {
	Score(ctx context.Context, queryText, passageText string) (float64, error)
}

// Generator 文本生成服务，单次阻塞调用
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
