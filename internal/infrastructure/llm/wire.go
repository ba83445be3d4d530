package llm

import (
	"time"

	"github.com/google/wire"

	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProviderSet 生成服务客户端 ProviderSet
var ProviderSet = wire.NewSet(ProvideClient)

// ProvideClient 由配置创建生成服务客户端
func ProvideClient(cfg *config.Config) *Client {
	l := cfg.LLM
	return NewClient(l.URL, l.APIKey, l.Model, Options{
		Temperature: l.Temperature,
		MaxTokens:   l.MaxTokens,
		Timeout:     config.Seconds(l.TimeoutSeconds, 30*time.Second),
	})
}
