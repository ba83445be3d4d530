package llm

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

// ErrEmptyCompletion 返回了空文本
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Client LLM Chat 客户端（OpenAI 兼容 /chat/completions）
type Client struct {
	url         string
	model       string
	temperature float64
	maxTokens   int
	http        *resty.Client
	logger      *slog.Logger
}

// ChatRequest Chat API 请求
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Message Chat 消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse Chat API 响应
type ChatResponse struct {
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Options 生成参数
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewClient 创建 LLM 客户端
func NewClient(baseURL, apiKey, model string, opts Options) *Client {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/chat/completions") {
		baseURL += "/chat/completions"
	}

	http := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if apiKey != "" {
		http.SetAuthToken(apiKey)
	}

	return &Client{
		url:         baseURL,
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		http:        http,
		logger:      log.NewModuleLogger("llm", "client"),
	}
}

// Complete 单轮补全，返回去除首尾空白的文本
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var chatResp ChatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(ChatRequest{
			Messages:    []Message{{Role: "user", Content: prompt}},
			Model:       c.model,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		}).
		SetResult(&chatResp).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("LLM API request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("LLM API returned no choices")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	c.logger.DebugContext(ctx, "LLM completion successful",
		"model", c.model,
		"tokens", chatResp.Usage.TotalTokens,
		"finish_reason", chatResp.Choices[0].FinishReason,
	)
	return text, nil
}
