package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/log"
)

// ErrEmptyMessage 消息为空
var ErrEmptyMessage = errors.New("message is required")

// ErrEmptyConversationID 会话 ID 为空
var ErrEmptyConversationID = errors.New("conversation id is required")

// Options 编排参数
type Options struct {
	TopK              int
	LockTimeout       time.Duration
	GenerationTimeout time.Duration
}

// Service 问答编排：澄清 -> 检索 -> 重排 -> 组装提示词 -> 生成 -> 解析与链接增强
type Service struct {
	store        domain.ConversationStore
	clarifier    *Clarifier
	retriever    *Retriever
	reranker     *Reranker
	prompts      *PromptAssembler
	generator    domain.Generator
	augmenter    *LinkAugmenter
	interactions domain.InteractionRepository
	opts         Options
	logger       *slog.Logger
}

// NewService 创建问答服务，interactions 可为 nil
func NewService(
	store domain.ConversationStore,
	clarifier *Clarifier,
	retriever *Retriever,
	reranker *Reranker,
	prompts *PromptAssembler,
	generator domain.Generator,
	augmenter *LinkAugmenter,
	interactions domain.InteractionRepository,
	opts Options,
) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	return &Service{
		store:        store,
		clarifier:    clarifier,
		retriever:    retriever,
		reranker:     reranker,
		prompts:      prompts,
		generator:    generator,
		augmenter:    augmenter,
		interactions: interactions,
		opts:         opts,
		logger:       log.NewModuleLogger("assistant", "service"),
	}
}

// Ask 回答一条消息
// 只有参数校验失败会返回错误；外部服务故障返回兜底回答，且会话状态保持不变
func (s *Service) Ask(ctx context.Context, conversationID, message string) (*domain.AnswerResult, error) {
	conversationID = strings.TrimSpace(conversationID)
	message = strings.TrimSpace(message)
	if conversationID == "" {
		return nil, ErrEmptyConversationID
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	ctx = log.WithConversationID(ctx, conversationID)
	started := time.Now()
	record := &domain.Interaction{
		ConversationID: conversationID,
		Query:          message,
		EffectiveQuery: message,
	}

	result, err := s.answer(ctx, conversationID, message, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "Answer pipeline failed, returning fallback", "error", err)
		result = domain.NewFallbackAnswer()
		record.Outcome = domain.OutcomeFallback
	}

	record.Reply = result.MainAnswer
	record.FollowUpCount = len(result.FollowUpQuestions)
	if result.HasLink() {
		record.LinkURL = result.AttachedLink.URL
	}
	record.LatencyMs = time.Since(started).Milliseconds()
	s.recordInteraction(ctx, record)

	return result, nil
}

// answer 在会话锁内执行完整流程，成功生成后才提交状态转移
func (s *Service) answer(ctx context.Context, conversationID, message string, record *domain.Interaction) (*domain.AnswerResult, error) {
	lockCtx, cancel := s.withTimeout(ctx, s.opts.LockTimeout)
	unlock, err := s.store.Lock(lockCtx, conversationID)
	cancel()
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := s.store.Load(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation state: %w", err)
	}

	transition := s.clarifier.Resolve(*state, message)
	record.EffectiveQuery = transition.EffectiveQuery

	candidates, err := s.retriever.Retrieve(ctx, transition.EffectiveQuery, s.opts.TopK)
	if err != nil {
		return nil, err
	}
	ranked, err := s.reranker.Rerank(ctx, transition.EffectiveQuery, candidates)
	if err != nil {
		return nil, err
	}

	prompt := s.prompts.Build(ranked, transition.EffectiveQuery)

	genCtx, cancelGen := s.withTimeout(ctx, s.opts.GenerationTimeout)
	text, err := s.generator.Complete(genCtx, prompt)
	cancelGen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrGenerationUnavailable)
	}

	mainAnswer, followUps := ParseResponse(text)
	result := &domain.AnswerResult{
		MainAnswer:        mainAnswer,
		FollowUpQuestions: followUps,
		AttachedLink:      s.augmenter.Attach(transition.EffectiveQuery, mainAnswer),
	}

	next := transition.Next
	if err := s.store.Save(ctx, &next); err != nil {
		// 回答已生成，状态写入失败只记录
		s.logger.WarnContext(ctx, "Failed to persist conversation state", "error", err)
	}

	record.Outcome = domain.OutcomeAnswered
	if transition.Rule == domain.RuleAwaiting {
		record.Outcome = domain.OutcomeClarifying
	}

	s.logger.InfoContext(ctx, "Query answered",
		"rule", transition.Rule,
		"candidates", len(ranked),
		"follow_ups", len(followUps),
		"link", result.HasLink(),
	)
	return result, nil
}

// EndConversation 结束会话并销毁状态
func (s *Service) EndConversation(ctx context.Context, conversationID string) error {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return ErrEmptyConversationID
	}

	lockCtx, cancel := s.withTimeout(ctx, s.opts.LockTimeout)
	unlock, err := s.store.Lock(lockCtx, conversationID)
	cancel()
	if err != nil {
		return err
	}
	defer unlock()

	return s.store.Delete(ctx, conversationID)
}

// RecentInteractions 最近的交互记录
func (s *Service) RecentInteractions(limit int) ([]*domain.Interaction, error) {
	if s.interactions == nil {
		return []*domain.Interaction{}, nil
	}
	return s.interactions.ListRecent(limit)
}

// InteractionStats 按结果统计交互数
func (s *Service) InteractionStats() (map[string]int, error) {
	if s.interactions == nil {
		return map[string]int{}, nil
	}
	return s.interactions.CountByOutcome()
}

func (s *Service) recordInteraction(ctx context.Context, record *domain.Interaction) {
	if s.interactions == nil {
		return
	}
	if err := s.interactions.Save(record); err != nil {
		s.logger.WarnContext(ctx, "Failed to record interaction", "error", err)
	}
}

func (s *Service) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
