package wire

import (
	"log/slog"

	"github.com/puassist/backend/internal/infrastructure/config"
	applog "github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/infrastructure/websocket"
	"github.com/puassist/backend/internal/interfaces"
)

// App 在线问答服务，组合 HTTP、WebSocket 与 MCP
type App struct {
	HTTPServer *interfaces.HTTPServer
	MCPServer  *interfaces.MCPServer
	wsHub      *websocket.Hub
	cfg        *config.Config
	logger     *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	cfg *config.Config,
) *App {
	return &App{
		HTTPServer: httpServer,
		MCPServer:  mcpServer,
		wsHub:      wsHub,
		cfg:        cfg,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting PU-Assistant server",
		"http_port", a.cfg.Server.HTTPPort,
		"collection", a.cfg.Qdrant.Collection,
		"conversation_backend", a.cfg.Conversation.Backend,
		"rerank", a.cfg.Rerank.Enabled,
	)

	a.wsHub.Start()

	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	// MCP 通过 HTTP 的 /mcp/sse 端点提供服务
	a.logger.Info("PU-Assistant server started successfully")
	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping PU-Assistant server")

	var firstErr error
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			a.logger.Error("Failed to stop HTTP server", "error", err)
			firstErr = err
		}
	}
	a.wsHub.Stop()
	return firstErr
}
