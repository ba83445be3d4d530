//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/puassist/backend/internal/application"
	appAssistant "github.com/puassist/backend/internal/application/assistant"
	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure"
	"github.com/puassist/backend/internal/infrastructure/config"
	"github.com/puassist/backend/internal/infrastructure/conversation"
	"github.com/puassist/backend/internal/infrastructure/embedding"
	"github.com/puassist/backend/internal/infrastructure/llm"
	"github.com/puassist/backend/internal/infrastructure/rerank"
	"github.com/puassist/backend/internal/infrastructure/storage"
	"github.com/puassist/backend/internal/infrastructure/tokenizer"
	"github.com/puassist/backend/internal/infrastructure/vector"
	"github.com/puassist/backend/internal/infrastructure/watcher"
	"github.com/puassist/backend/internal/interfaces"
)

// InitializeAll 初始化在线服务（HTTP + WebSocket + MCP）
func InitializeAll() (*App, func(), error) {
	wire.Build(
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		NewApp,
	)
	return nil, nil, nil
}

// InitializeCLI 初始化终端客户端使用的问答服务
func InitializeCLI() (*appAssistant.Service, func(), error) {
	wire.Build(
		config.ProviderSet,
		storage.ProviderSet,
		conversation.ProviderSet,
		embedding.ProviderSet,
		llm.ProviderSet,
		rerank.ProviderSet,
		vector.ProviderSet,
		wire.Bind(new(vector.QueryEmbedder), new(*embedding.Client)),
		wire.Bind(new(domain.PassageIndex), new(*vector.PassageIndex)),
		wire.Bind(new(domain.Generator), new(*llm.Client)),
		application.ProviderSet,
	)
	return nil, nil, nil
}

// InitializeIndexer 初始化离线索引程序
func InitializeIndexer() (*IndexerApp, func(), error) {
	wire.Build(
		config.Load,
		tokenizer.ProviderSet,
		embedding.ProviderSet,
		vector.ProviderSet,
		wire.Bind(new(vector.QueryEmbedder), new(*embedding.Client)),
		wire.Bind(new(appAssistant.Tokenizer), new(*tokenizer.Tiktoken)),
		wire.Bind(new(appAssistant.TextEmbedder), new(*embedding.Client)),
		wire.Bind(new(appAssistant.PassageWriter), new(*vector.PassageIndex)),
		appAssistant.IndexerSet,
		watcher.ProvideIndexMetadata,
		NewIndexerApp,
	)
	return nil, nil, nil
}
