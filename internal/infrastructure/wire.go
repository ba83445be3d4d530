package infrastructure

import (
	"github.com/google/wire"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
	"github.com/puassist/backend/internal/infrastructure/conversation"
	"github.com/puassist/backend/internal/infrastructure/embedding"
	"github.com/puassist/backend/internal/infrastructure/llm"
	"github.com/puassist/backend/internal/infrastructure/rerank"
	"github.com/puassist/backend/internal/infrastructure/storage"
	"github.com/puassist/backend/internal/infrastructure/vector"
	"github.com/puassist/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet（在线问答）
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	conversation.ProviderSet,
	websocket.ProviderSet,
	embedding.ProviderSet,
	llm.ProviderSet,
	rerank.ProviderSet,
	vector.ProviderSet,
	wire.Bind(new(vector.QueryEmbedder), new(*embedding.Client)),
	wire.Bind(new(domain.PassageIndex), new(*vector.PassageIndex)),
	wire.Bind(new(domain.Generator), new(*llm.Client)),
)
