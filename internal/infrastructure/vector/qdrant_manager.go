package vector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/puassist/backend/internal/infrastructure/log"
)

// pointsAPI qdrant.Client 中本模块用到的方法
type pointsAPI interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
}

// ConnectOptions Qdrant 连接参数
type ConnectOptions struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// QdrantManager Qdrant 连接管理器
type QdrantManager struct {
	opts   ConnectOptions
	client *qdrant.Client
	logger *slog.Logger
}

// NewQdrantManager 创建 Qdrant 管理器
func NewQdrantManager(opts ConnectOptions) *QdrantManager {
	return &QdrantManager{
		opts:   opts,
		logger: log.NewModuleLogger("vector", "qdrant"),
	}
}

// Connect 建立 gRPC 连接并等待服务就绪
func (q *QdrantManager) Connect(ctx context.Context, timeout time.Duration) error {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   q.opts.Host,
		Port:   q.opts.Port,
		APIKey: q.opts.APIKey,
		UseTLS: q.opts.UseTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	if err := waitForReady(ctx, client, timeout); err != nil {
		_ = client.Close()
		return err
	}

	q.client = client
	q.logger.Info("Connected to qdrant", "host", q.opts.Host, "port", q.opts.Port)
	return nil
}

// Close 关闭连接
func (q *QdrantManager) Close() error {
	if q.client == nil {
		return nil
	}
	err := q.client.Close()
	q.client = nil
	return err
}

// GetClient 获取 Qdrant 客户端
func (q *QdrantManager) GetClient() *qdrant.Client {
	return q.client
}

// waitForReady 轮询 ListCollections 直到成功或超时
func waitForReady(ctx context.Context, client pointsAPI, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := client.ListCollections(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for qdrant to be ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// EnsureCollection 集合不存在时创建（余弦距离）
func EnsureCollection(ctx context.Context, client pointsAPI, name string, vectorSize uint64) (bool, error) {
	existing, err := client.ListCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	for _, c := range existing {
		if c == name {
			return false, nil
		}
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return true, nil
}
