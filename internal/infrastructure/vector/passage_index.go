package vector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/log"
)

// payload 字段名
const (
	payloadSource    = "source"
	payloadChunkType = "chunk_type"
	payloadChunkID   = "chunk_id"
	payloadPage      = "page"
	payloadText      = "text"
)

// QueryEmbedder 查询向量化
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// PassageIndex 基于 Qdrant 的片段索引，实现 NearestNeighbors 与批量写入
type PassageIndex struct {
	client     pointsAPI
	embedder   QueryEmbedder
	collection string
	logger     *slog.Logger
}

// NewPassageIndex 创建片段索引
func NewPassageIndex(client pointsAPI, embedder QueryEmbedder, collection string) *PassageIndex {
	return &PassageIndex{
		client:     client,
		embedder:   embedder,
		collection: collection,
		logger:     log.NewModuleLogger("vector", "passage_index"),
	}
}

// NearestNeighbors 嵌入查询并返回最相近的 k 个片段（按相似度降序）
func (p *PassageIndex) NearestNeighbors(ctx context.Context, queryText string, k int) ([]domain.Passage, error) {
	if k <= 0 {
		return nil, errors.New("k must be positive")
	}

	vec, err := p.embedder.EmbedQuery(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	limit := uint64(k)
	hits, err := p.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: p.collection,
		Query:          qdrant.NewQuery(vec...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query qdrant: %w", err)
	}

	passages := make([]domain.Passage, 0, len(hits))
	for _, hit := range hits {
		if passage, ok := convertHit(hit); ok {
			passages = append(passages, passage)
		}
	}

	p.logger.DebugContext(ctx, "Nearest neighbors retrieved", "requested", k, "returned", len(passages))
	return passages, nil
}

// EnsureCollection 确保集合存在
func (p *PassageIndex) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	created, err := EnsureCollection(ctx, p.client, p.collection, vectorSize)
	if err != nil {
		return err
	}
	if created {
		p.logger.Info("Created collection", "collection", p.collection, "vector_size", vectorSize)
	}
	return nil
}

// Upsert 写入片段及其向量，点 ID 由 source/page/chunk_id 确定，重复写入幂等
func (p *PassageIndex) Upsert(ctx context.Context, passages []domain.Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passages (%d) and vectors (%d) length mismatch", len(passages), len(vectors))
	}
	if len(passages) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(passages))
	for i, passage := range passages {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(passage)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: map[string]*qdrant.Value{
				payloadSource:    qdrant.NewValueString(passage.Source),
				payloadChunkType: qdrant.NewValueString(string(passage.ChunkType)),
				payloadChunkID:   qdrant.NewValueString(passage.ChunkID),
				payloadPage:      qdrant.NewValueInt(int64(passage.Page)),
				payloadText:      qdrant.NewValueString(passage.Text),
			},
		}
	}

	wait := true
	if _, err := p.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: p.collection,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	return nil
}

// PointID 片段的确定性 UUIDv5
func PointID(p domain.Passage) string {
	key := fmt.Sprintf("%s|%d|%s", p.Source, p.Page, p.ChunkID)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// convertHit 将 Qdrant 命中转换为片段，缺少正文时丢弃
func convertHit(hit *qdrant.ScoredPoint) (domain.Passage, bool) {
	payload := hit.GetPayload()
	if payload == nil {
		return domain.Passage{}, false
	}
	text := extractStringValue(payload[payloadText])
	if text == "" {
		return domain.Passage{}, false
	}

	passage := domain.Passage{
		Source:    extractStringValue(payload[payloadSource]),
		ChunkType: domain.ChunkType(extractStringValue(payload[payloadChunkType])),
		ChunkID:   extractStringValue(payload[payloadChunkID]),
		Page:      int(payload[payloadPage].GetIntegerValue()),
		Text:      text,
		Score:     float64(hit.GetScore()),
	}
	if id := hit.GetId(); id != nil {
		passage.ID = id.GetUuid()
	}
	return passage, true
}

// extractStringValue 从 qdrant.Value 提取字符串值
func extractStringValue(val *qdrant.Value) string {
	if val == nil {
		return ""
	}
	return val.GetStringValue()
}
