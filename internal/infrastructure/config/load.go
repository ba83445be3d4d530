package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath 配置文件路径环境变量
	EnvConfigPath = "PU_ASSISTANT_CONFIG"
	// DefaultConfigPath 默认配置文件
	DefaultConfigPath = "config.yaml"
)

// Load 加载配置：.env -> 默认值 -> YAML 文件 -> 环境变量
// 配置文件不存在时使用默认值
func Load() (*Config, error) {
	if err := LoadDotenvIfPresent(".env"); err != nil {
		return nil, err
	}

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadFile(path)
}

// LoadFile 从指定 YAML 文件加载配置
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// 文件中的占位值不能覆盖环境变量里的密钥
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadDotenvIfPresent 存在时加载 .env，不覆盖已有环境变量
func LoadDotenvIfPresent(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Indexer.MaxTokens <= 0 || c.Indexer.Stride < 0 || c.Indexer.Stride >= c.Indexer.MaxTokens {
		return fmt.Errorf("indexer: need 0 <= stride < max_tokens, got stride=%d max_tokens=%d",
			c.Indexer.Stride, c.Indexer.MaxTokens)
	}
	switch c.Conversation.Backend {
	case "memory":
	case "valkey":
		if c.Conversation.ValkeyURL == "" {
			return errors.New("conversation.valkey_url is required for valkey backend")
		}
	default:
		return fmt.Errorf("unknown conversation backend %q", c.Conversation.Backend)
	}
	return nil
}
