package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/log"
)

// Retriever 近邻检索，只读
type Retriever struct {
	index   domain.PassageIndex
	timeout time.Duration
	logger  *slog.Logger
}

// NewRetriever 创建检索器
func NewRetriever(index domain.PassageIndex, timeout time.Duration) *Retriever {
	return &Retriever{
		index:   index,
		timeout: timeout,
		logger:  log.NewModuleLogger("assistant", "retriever"),
	}
}

// Retrieve 返回与查询最相近的至多 k 个片段，顺序与索引一致
// 索引错误或超时统一映射为 ErrRetrievalUnavailable
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (domain.CandidateSet, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	passages, err := r.index.NearestNeighbors(ctx, query, k)
	if err != nil {
		r.logger.WarnContext(ctx, "Passage index unavailable", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}
	if len(passages) > k {
		passages = passages[:k]
	}
	return domain.CandidateSet(passages), nil
}
