package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// keyLock 单个会话的锁，refs 为持有或等待者数量
type keyLock struct {
	ch   chan struct{}
	refs int
}

type memoryEntry struct {
	state     domain.ConversationState
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，按会话 ID 加锁，空闲超过 TTL 的状态视为不存在
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	locks  map[string]*keyLock
	states map[string]memoryEntry
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		locks:  make(map[string]*keyLock),
		states: make(map[string]memoryEntry),
	}
}

// Lock 获取会话锁，ctx 结束前拿不到锁返回 ErrConversationBusy
func (s *MemoryStore) Lock(ctx context.Context, conversationID string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[conversationID]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		s.locks[conversationID] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-l.ch
				s.releaseRef(conversationID, l)
			})
		}, nil
	case <-ctx.Done():
		s.releaseRef(conversationID, l)
		return nil, fmt.Errorf("%w: %v", domain.ErrConversationBusy, ctx.Err())
	}
}

func (s *MemoryStore) releaseRef(conversationID string, l *keyLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, conversationID)
	}
}

// Load 读取会话状态
func (s *MemoryStore) Load(_ context.Context, conversationID string) (*domain.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.states[conversationID]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.states, conversationID)
		return domain.NewConversationState(conversationID), nil
	}
	state := entry.state
	return &state, nil
}

// Save 保存会话状态并刷新 TTL
func (s *MemoryStore) Save(_ context.Context, state *domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.ConversationID] = memoryEntry{
		state:     *state,
		expiresAt: s.now().Add(s.ttl),
	}
	s.sweepLocked()
	return nil
}

// Delete 删除会话状态
func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, conversationID)
	return nil
}

// Len 当前未过期的会话数
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.states)
}

// sweepLocked 清理过期状态，调用方持有 mu
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.states {
		if now.After(entry.expiresAt) {
			delete(s.states, id)
		}
	}
}
