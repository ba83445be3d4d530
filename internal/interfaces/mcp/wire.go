package mcp

import (
	"github.com/google/wire"

	appAssistant "github.com/puassist/backend/internal/application/assistant"
)

// ProviderSet MCP ProviderSet
var ProviderSet = wire.NewSet(
	wire.Bind(new(Assistant), new(*appAssistant.Service)),
	NewServer,
)
