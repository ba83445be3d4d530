package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/puassist/backend/internal/infrastructure/config"
	"github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/interfaces/http/handler"
	"github.com/puassist/backend/internal/interfaces/http/middleware"
	"github.com/puassist/backend/internal/interfaces/mcp"
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器，mcpServer 可为 nil
func NewServer(
	cfg *config.ServerConfig,
	chatHandler *handler.ChatHandler,
	chatWSHandler *handler.ChatWSHandler,
	interactionHandler *handler.InteractionHandler,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), corsMiddleware(cfg.CORSOrigins))

	logger := log.NewModuleLogger("http", "server")

	chat := router.Group("/api/chat")
	{
		chat.POST("", middleware.EnsureUTF8Body(), chatHandler.Ask)
		chat.GET("/ws", chatWSHandler.Serve)
		chat.DELETE("/:conversationId", chatHandler.End)
	}

	api := router.Group("/api/v1")
	{
		api.GET("/interactions", interactionHandler.List)
		api.GET("/interactions/stats", interactionHandler.Stats)
	}

	// 官方 PDF 等静态文件
	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			router.Static("/files", cfg.StaticDir)
		} else {
			logger.Warn("Static directory not found, /files disabled", "dir", cfg.StaticDir)
		}
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		logger:   logger,
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{handler.ConversationHeader, middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}

// Handler 返回路由，供测试与嵌入使用
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 启动服务器，阻塞直到关闭
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:              s.httpPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
