package assistant

import (
	"time"

	"github.com/google/wire"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

// ProviderSet 问答应用层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideClarifier,
	ProvidePromptAssembler,
	ProvideLinkAugmenter,
	ProvideRetriever,
	ProvideReranker,
	ProvideOptions,
	NewService,
)

// ProvideClarifier 由静态知识创建澄清器
func ProvideClarifier(k *config.Knowledge) *Clarifier {
	return NewClarifier(k.VagueKeywords)
}

// ProvidePromptAssembler 由静态知识创建提示词组装器
func ProvidePromptAssembler(k *config.Knowledge) *PromptAssembler {
	return NewPromptAssembler(k.Instruction, k.Version)
}

// ProvideLinkAugmenter 由静态知识创建链接增强器
func ProvideLinkAugmenter(k *config.Knowledge) *LinkAugmenter {
	return NewLinkAugmenter(k.Intents, k.LinkLabels, FeeRule{
		Keyword: k.FeeLink.Keyword,
		URL:     k.FeeLink.URL,
		Label:   k.FeeLink.Label,
	})
}

// ProvideRetriever 创建检索器
func ProvideRetriever(index domain.PassageIndex, cfg *config.Config) *Retriever {
	return NewRetriever(index, config.Seconds(cfg.Retrieval.TimeoutSeconds, 10*time.Second))
}

// ProvideReranker 创建重排器，scorer 为 nil 时关闭重排
func ProvideReranker(scorer domain.Scorer, cfg *config.Config) *Reranker {
	return NewReranker(scorer, cfg.Rerank.Concurrency, config.Seconds(cfg.Rerank.TimeoutSeconds, 10*time.Second))
}

// ProvideOptions 编排参数
func ProvideOptions(cfg *config.Config) Options {
	return Options{
		TopK:              cfg.Retrieval.TopK,
		LockTimeout:       config.Seconds(cfg.Conversation.LockTimeoutSeconds, 5*time.Second),
		GenerationTimeout: config.Seconds(cfg.LLM.TimeoutSeconds, 30*time.Second),
	}
}

// IndexerSet 离线索引 ProviderSet
var IndexerSet = wire.NewSet(
	ProvideChunker,
	ProvideIndexer,
)

// ProvideChunker 按配置的窗口与重叠创建切分器
func ProvideChunker(tok Tokenizer, cfg *config.Config) (*Chunker, error) {
	return NewChunker(tok, cfg.Indexer.MaxTokens, cfg.Indexer.Stride)
}

// ProvideIndexer 创建离线索引器
func ProvideIndexer(chunker *Chunker, embedder TextEmbedder, writer PassageWriter, cfg *config.Config) *Indexer {
	return NewIndexer(chunker, embedder, writer, cfg.Qdrant.VectorSize, cfg.Indexer.BatchSize)
}
