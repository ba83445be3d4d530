package embedding

import (
	"time"

	"github.com/google/wire"

	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProviderSet 向量化客户端 ProviderSet
var ProviderSet = wire.NewSet(ProvideClient)

// ProvideClient 由配置创建向量化客户端
func ProvideClient(cfg *config.Config) *Client {
	e := cfg.Embedding
	return NewClient(e.URL, e.APIKey, e.Model, config.Seconds(e.TimeoutSeconds, 10*time.Second))
}
