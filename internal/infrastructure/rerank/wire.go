package rerank

import (
	"time"

	"github.com/google/wire"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProviderSet 重排客户端 ProviderSet
var ProviderSet = wire.NewSet(ProvideScorer)

// ProvideScorer 重排关闭或未配置地址时返回 nil，检索结果保持原顺序
func ProvideScorer(cfg *config.Config) domain.Scorer {
	r := cfg.Rerank
	if !r.Enabled || r.URL == "" {
		return nil
	}
	return NewClient(r.URL, config.Seconds(r.TimeoutSeconds, 10*time.Second))
}
