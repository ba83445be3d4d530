package vector

import (
	"context"
	"time"

	"github.com/google/wire"

	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProviderSet 向量库 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideQdrantManager,
	ProvidePassageIndex,
)

// connectTimeout 启动时等待 Qdrant 就绪的最长时间
const connectTimeout = 15 * time.Second

// ProvideQdrantManager 连接 Qdrant，返回的 cleanup 关闭连接
func ProvideQdrantManager(cfg *config.Config) (*QdrantManager, func(), error) {
	m := NewQdrantManager(ConnectOptions{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	})
	if err := m.Connect(context.Background(), connectTimeout); err != nil {
		return nil, nil, err
	}
	return m, func() { _ = m.Close() }, nil
}

// ProvidePassageIndex 创建片段索引
func ProvidePassageIndex(m *QdrantManager, embedder QueryEmbedder, cfg *config.Config) *PassageIndex {
	return NewPassageIndex(m.GetClient(), embedder, cfg.Qdrant.Collection)
}
