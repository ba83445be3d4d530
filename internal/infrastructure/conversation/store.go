package conversation

import (
	"fmt"
	"time"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

// 存储后端
const (
	BackendMemory = "memory"
	BackendValkey = "valkey"
)

// lockTTLMargin 锁过期时间在最长问答耗时之外的余量
const lockTTLMargin = 10 * time.Second

// LockTTL 分布式锁的过期时间：等锁、检索、重排与生成超时之和再加余量
// 持锁期间锁不会先于请求过期
func LockTTL(cfg *config.Config) time.Duration {
	return cfg.MaxPipelineDuration() + lockTTLMargin
}

// NewStore 按配置创建会话存储（wire provider）
// 返回的 cleanup 关闭底层连接
func NewStore(cfg *config.Config) (domain.ConversationStore, func(), error) {
	ttl := time.Duration(cfg.Conversation.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	switch cfg.Conversation.Backend {
	case BackendValkey:
		store, err := NewValkeyStore(cfg.Conversation.ValkeyURL, ttl, LockTTL(cfg))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case BackendMemory, "":
		store := NewMemoryStore(ttl)
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown conversation backend %q", cfg.Conversation.Backend)
	}
}
