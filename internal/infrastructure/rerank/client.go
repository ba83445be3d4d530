package rerank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"

	"github.com/puassist/backend/internal/infrastructure/log"
)

// Client 交叉编码器打分客户端（TEI 兼容 /rerank）
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// rerankRequest /rerank 请求
type rerankRequest struct {
	Query    string   `json:"query"`
	Texts    []string `json:"texts"`
	RawScore bool     `json:"raw_scores"`
}

// rerankItem /rerank 响应项
type rerankItem struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// NewClient 创建打分客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetJSONMarshaler(json.Marshal).
			SetJSONUnmarshaler(json.Unmarshal),
		logger: log.NewModuleLogger("rerank", "client"),
	}
}

// Score 对单个 (query, passage) 打分，分数越高越相关
func (c *Client) Score(ctx context.Context, query, passage string) (float64, error) {
	var items []rerankItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rerankRequest{Query: query, Texts: []string{passage}, RawScore: true}).
		SetResult(&items).
		Post("/rerank")
	if err != nil {
		return 0, fmt.Errorf("rerank request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.WarnContext(ctx, "Rerank API returned error", "status_code", resp.StatusCode())
		return 0, fmt.Errorf("rerank API returned status %d", resp.StatusCode())
	}
	for _, it := range items {
		if it.Index == 0 {
			return it.Score, nil
		}
	}
	return 0, fmt.Errorf("rerank API returned no score")
}
