package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"

	"github.com/puassist/backend/internal/infrastructure/log"
)

// maxBatchSize OpenAI embeddings API 单次最多 2048 条输入
const maxBatchSize = 2048

// Client Embedding API 客户端
type Client struct {
	url    string
	model  string
	http   *resty.Client
	logger *slog.Logger
}

// NewClient 创建 Embedding 客户端
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if apiKey != "" {
		http.SetAuthToken(apiKey)
	}

	return &Client{
		url:    buildEmbeddingURL(strings.TrimSuffix(baseURL, "/")),
		model:  model,
		http:   http,
		logger: log.NewModuleLogger("embedding", "client"),
	}
}

// buildEmbeddingURL 构建 Embedding API URL，按需补全 /v1/embeddings
func buildEmbeddingURL(baseURL string) string {
	switch {
	case strings.Contains(baseURL, "/v1/embeddings"):
		return baseURL
	case strings.HasSuffix(baseURL, "/v1"):
		return baseURL + "/embeddings"
	default:
		return baseURL + "/v1/embeddings"
	}
}

// EmbeddingRequest Embedding 请求
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingResponse Embedding 响应
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
}

// EmbedQuery 向量化单条查询
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts 批量向量化文本，超过上限时分批
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("texts cannot be empty")
	}

	all := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))
		vectors, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch starting at %d: %w", start, err)
		}
		all = append(all, vectors...)
	}
	return all, nil
}

// embedBatch 处理单个批次，不重试
func (c *Client) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var result EmbeddingResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(EmbeddingRequest{Model: c.model, Input: texts}).
		SetResult(&result).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("send embedding request: %w", err)
	}
	if resp.IsError() {
		c.logger.WarnContext(ctx, "Embedding API returned error",
			"status_code", resp.StatusCode(),
			"body", truncate(resp.String(), 200),
		)
		return nil, fmt.Errorf("embedding API returned status %d", resp.StatusCode())
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding API returned %d vectors for %d inputs", len(result.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range result.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Dimension 通过一次测试请求获取向量维度
func (c *Client) Dimension(ctx context.Context) (int, error) {
	v, err := c.EmbedQuery(ctx, "test")
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, errors.New("invalid embedding response")
	}
	return len(v), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
