package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/log"
)

// Reranker 交叉编码器重排
// scorer 为 nil 时按原顺序返回
type Reranker struct {
	scorer      domain.Scorer
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewReranker 创建重排器
func NewReranker(scorer domain.Scorer, concurrency int, timeout time.Duration) *Reranker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Reranker{
		scorer:      scorer,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      log.NewModuleLogger("assistant", "reranker"),
	}
}

// Enabled 是否启用打分
func (r *Reranker) Enabled() bool {
	return r.scorer != nil
}

// Rerank 对每个片段打分并按分数稳定降序排列，同分保持检索顺序
func (r *Reranker) Rerank(ctx context.Context, query string, candidates domain.CandidateSet) (domain.CandidateSet, error) {
	out := make(domain.CandidateSet, len(candidates))
	copy(out, candidates)
	if len(out) == 0 || r.scorer == nil {
		return out, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// 按下标写回，结果与调度顺序无关
	scores := make([]float64, len(out))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(r.concurrency)
	for i := range out {
		text := out[i].Text
		p.Go(func(ctx context.Context) error {
			score, err := r.scorer.Score(ctx, query, text)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		r.logger.WarnContext(ctx, "Scorer unavailable", "error", err)
		return nil, fmt.Errorf("%w: rerank: %v", domain.ErrRetrievalUnavailable, err)
	}

	for i := range out {
		out[i].Score = scores[i]
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out, nil
}
