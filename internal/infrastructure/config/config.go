package config

import (
	"os"
	"time"
)

// EnvHTTPPort HTTP 监听地址环境变量，MCP 挂在同一端口的 /mcp/sse 下
const EnvHTTPPort = "PU_ASSISTANT_HTTP_PORT"

// 密钥类环境变量，优先级高于配置文件
const (
	EnvGroqAPIKey      = "GROQ_API_KEY"
	EnvEmbeddingAPIKey = "EMBEDDING_API_KEY"
	EnvQdrantAPIKey    = "QDRANT_API_KEY"
	EnvValkeyURL       = "VALKEY_URL"
)

// Config 应用配置
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	WebSocket    WebSocketConfig    `yaml:"websocket"`
	Qdrant       QdrantConfig       `yaml:"qdrant"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	LLM          LLMConfig          `yaml:"llm"`
	Rerank       RerankConfig       `yaml:"rerank"`
	Retrieval    RetrievalConfig    `yaml:"retrieval"`
	Conversation ConversationConfig `yaml:"conversation"`
	Indexer      IndexerConfig      `yaml:"indexer"`

	// KnowledgePath 覆盖内置 assistant.yaml 的文件路径，留空使用内置版本
	KnowledgePath string `yaml:"knowledge_path"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort    string   `yaml:"http_port"`
	StaticDir   string   `yaml:"static_dir"` // /files 下提供的静态文件目录
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `yaml:"path"` // 留空使用数据目录下的 assistant.db
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// QdrantConfig 向量库配置
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	APIKey     string `yaml:"api_key"`
	UseTLS     bool   `yaml:"use_tls"`
	Collection string `yaml:"collection"`
	VectorSize uint64 `yaml:"vector_size"`
}

// EmbeddingConfig 向量化服务配置（OpenAI 兼容 /v1/embeddings）
type EmbeddingConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LLMConfig 生成服务配置（OpenAI 兼容 /chat/completions）
type LLMConfig struct {
	URL            string  `yaml:"url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// RerankConfig 交叉编码器重排配置
type RerankConfig struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Concurrency    int    `yaml:"concurrency"`
}

// RetrievalConfig 检索配置
type RetrievalConfig struct {
	TopK           int `yaml:"top_k"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ConversationConfig 会话状态存储配置
type ConversationConfig struct {
	Backend            string `yaml:"backend"` // memory | valkey
	ValkeyURL          string `yaml:"valkey_url"`
	TTLMinutes         int    `yaml:"ttl_minutes"`
	LockTimeoutSeconds int    `yaml:"lock_timeout_seconds"`
}

// IndexerConfig 离线索引配置
type IndexerConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	MaxTokens  int    `yaml:"max_tokens"`
	Stride     int    `yaml:"stride"`
	BatchSize  int    `yaml:"batch_size"`
}

// NewConfig 创建配置（默认值）
func NewConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:    ":5000",
			StaticDir:   "static",
			CORSOrigins: []string{"*"},
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "pu-docs",
			VectorSize: 384,
		},
		Embedding: EmbeddingConfig{
			URL:            "http://localhost:8081/v1/embeddings",
			Model:          "sentence-transformers/all-MiniLM-L6-v2",
			TimeoutSeconds: 10,
		},
		LLM: LLMConfig{
			URL:            "https://api.groq.com/openai/v1/chat/completions",
			Model:          "llama3-8b-8192",
			Temperature:    0.5,
			MaxTokens:      1024,
			TimeoutSeconds: 30,
		},
		Rerank: RerankConfig{
			Enabled:        true,
			URL:            "http://localhost:8082",
			TimeoutSeconds: 10,
			Concurrency:    4,
		},
		Retrieval: RetrievalConfig{
			TopK:           10,
			TimeoutSeconds: 10,
		},
		Conversation: ConversationConfig{
			Backend:            "memory",
			TTLMinutes:         30,
			LockTimeoutSeconds: 5,
		},
		Indexer: IndexerConfig{
			CorpusPath: "extracted_data_combined.json",
			MaxTokens:  512,
			Stride:     50,
			BatchSize:  32,
		},
	}
	cfg.applyEnv()
	return cfg
}

// applyEnv 环境变量覆盖
func (c *Config) applyEnv() {
	setFromEnv(&c.Server.HTTPPort, EnvHTTPPort)
	setFromEnv(&c.LLM.APIKey, EnvGroqAPIKey)
	setFromEnv(&c.Embedding.APIKey, EnvEmbeddingAPIKey)
	setFromEnv(&c.Qdrant.APIKey, EnvQdrantAPIKey)
	if url := os.Getenv(EnvValkeyURL); url != "" {
		c.Conversation.ValkeyURL = url
		c.Conversation.Backend = "valkey"
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Seconds 将秒数转为 Duration，非正数回退到 fallback
func Seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// MaxPipelineDuration 单次问答持有会话锁的最长时间
// 与应用层使用相同的超时默认值
func (c *Config) MaxPipelineDuration() time.Duration {
	return Seconds(c.Conversation.LockTimeoutSeconds, 5*time.Second) +
		Seconds(c.Retrieval.TimeoutSeconds, 10*time.Second) +
		Seconds(c.Rerank.TimeoutSeconds, 10*time.Second) +
		Seconds(c.LLM.TimeoutSeconds, 30*time.Second)
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}
