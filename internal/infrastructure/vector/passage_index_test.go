package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f fakeEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return f.vec, f.err
}

func hit(id string, score float32, text string) *qdrant.ScoredPoint {
	return &qdrant.ScoredPoint{
		Id:    qdrant.NewID(id),
		Score: score,
		Payload: map[string]*qdrant.Value{
			payloadSource:    qdrant.NewValueString("prospectus.pdf"),
			payloadChunkType: qdrant.NewValueString("text"),
			payloadChunkID:   qdrant.NewValueString("text_0"),
			payloadPage:      qdrant.NewValueInt(4),
			payloadText:      qdrant.NewValueString(text),
		},
	}
}

func TestNearestNeighbors(t *testing.T) {
	f := &fakePoints{hits: []*qdrant.ScoredPoint{
		hit("6f1c5b2e-4f0a-5d1e-9a43-000000000001", 0.9, "B.Tech admission through JEE"),
		{Id: qdrant.NewID("6f1c5b2e-4f0a-5d1e-9a43-000000000002"), Score: 0.5}, // 无 payload，丢弃
	}}
	idx := NewPassageIndex(f, fakeEmbedder{vec: []float32{0.1, 0.2}}, "pu-docs")

	got, err := idx.NearestNeighbors(context.Background(), "admission", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B.Tech admission through JEE", got[0].Text)
	assert.Equal(t, domain.ChunkTypeText, got[0].ChunkType)
	assert.Equal(t, 4, got[0].Page)
	assert.InDelta(t, 0.9, got[0].Score, 1e-6)

	require.NotNil(t, f.lastQuery)
	assert.Equal(t, "pu-docs", f.lastQuery.CollectionName)
	assert.Equal(t, uint64(3), f.lastQuery.GetLimit())
}

func TestNearestNeighbors_Errors(t *testing.T) {
	idx := NewPassageIndex(&fakePoints{}, fakeEmbedder{err: errors.New("down")}, "pu-docs")
	_, err := idx.NearestNeighbors(context.Background(), "q", 3)
	assert.Error(t, err)

	idx = NewPassageIndex(&fakePoints{queryErr: errors.New("down")}, fakeEmbedder{vec: []float32{1}}, "pu-docs")
	_, err = idx.NearestNeighbors(context.Background(), "q", 3)
	assert.Error(t, err)

	_, err = idx.NearestNeighbors(context.Background(), "q", 0)
	assert.Error(t, err)
}

func TestUpsert(t *testing.T) {
	f := &fakePoints{}
	idx := NewPassageIndex(f, fakeEmbedder{}, "pu-docs")

	passages := []domain.Passage{
		{Source: "a.pdf", Page: 1, ChunkID: "text_0", ChunkType: domain.ChunkTypeText, Text: "one"},
		{Source: "a.pdf", Page: 1, ChunkID: "table_0", ChunkType: domain.ChunkTypeTable, Text: "two"},
	}
	require.NoError(t, idx.Upsert(context.Background(), passages, [][]float32{{1}, {2}}))
	require.Len(t, f.upserts, 1)
	require.Len(t, f.upserts[0].Points, 2)
	assert.Equal(t, "table", f.upserts[0].Points[1].Payload[payloadChunkType].GetStringValue())

	assert.Error(t, idx.Upsert(context.Background(), passages, [][]float32{{1}}))
	assert.NoError(t, idx.Upsert(context.Background(), nil, nil))
}

func TestPointID_Deterministic(t *testing.T) {
	p := domain.Passage{Source: "a.pdf", Page: 2, ChunkID: "text_3"}
	assert.Equal(t, PointID(p), PointID(p))
	assert.NotEqual(t, PointID(p), PointID(domain.Passage{Source: "a.pdf", Page: 2, ChunkID: "text_4"}))
}
