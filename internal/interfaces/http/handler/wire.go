package handler

import (
	"github.com/google/wire"

	appAssistant "github.com/puassist/backend/internal/application/assistant"
)

// ProviderSet Handler ProviderSet
var ProviderSet = wire.NewSet(
	wire.Bind(new(Assistant), new(*appAssistant.Service)),
	wire.Bind(new(InteractionReader), new(*appAssistant.Service)),
	NewChatHandler,
	NewChatWSHandler,
	NewInteractionHandler,
)
