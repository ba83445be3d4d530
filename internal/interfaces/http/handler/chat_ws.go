package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	appAssistant "github.com/puassist/backend/internal/application/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
	"github.com/puassist/backend/internal/infrastructure/log"
	infraWS "github.com/puassist/backend/internal/infrastructure/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 8 * 1024
	wsSendBuffer = 8
)

// WSIncoming 客户端发送的消息
type WSIncoming struct {
	Message string `json:"message"`
}

// WSError 错误消息
type WSError struct {
	Error string `json:"error"`
}

// ChatWSHandler WebSocket 聊天处理器
type ChatWSHandler struct {
	assistant Assistant
	hub       *infraWS.Hub
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewChatWSHandler 创建 WebSocket 聊天处理器
func NewChatWSHandler(assistant Assistant, hub *infraWS.Hub, cfg *config.Config) *ChatWSHandler {
	return &ChatWSHandler{
		assistant: assistant,
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			CheckOrigin: AllowedOrigin(cfg.Server.CORSOrigins),
		},
		logger: log.NewModuleLogger("http", "chat_ws"),
	}
}

// AllowedOrigin 按配置的来源列表校验升级请求的 Origin
// 列表为空或包含 "*" 时全部放行；没有 Origin 头的非浏览器客户端放行
func AllowedOrigin(origins []string) func(r *http.Request) bool {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if allowAll || origin == "" {
			return true
		}
		return slices.ContainsFunc(origins, func(o string) bool {
			return strings.EqualFold(strings.TrimSuffix(o, "/"), origin)
		})
	}
}

// Serve 升级连接并处理消息
// GET /api/chat/ws?conversationId=xxx
func (h *ChatWSHandler) Serve(c *gin.Context) {
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, http.Header{ConversationHeader: {conversationID}})
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	conn := infraWS.NewConnection(conversationID, wsSendBuffer)
	if err := h.hub.Register(conn); err != nil {
		ws.Close()
		return
	}

	ctx := log.WithConversationID(c.Request.Context(), conversationID)
	h.logger.DebugContext(ctx, "WebSocket connected")

	go h.writePump(ws, conn)
	h.readPump(c, ws, conn)
}

func (h *ChatWSHandler) readPump(c *gin.Context, ws *websocket.Conn, conn *infraWS.Connection) {
	defer func() {
		h.hub.Unregister(conn)
		ws.Close()
	}()

	ws.SetReadLimit(wsMaxMessage)
	_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var in WSIncoming
		if err := ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", "error", err)
			}
			return
		}

		result, err := h.assistant.Ask(c.Request.Context(), conn.ConversationID, in.Message)
		var payload any = result
		if err != nil {
			if !errors.Is(err, appAssistant.ErrEmptyMessage) {
				h.logger.Warn("WebSocket ask failed", "error", err)
			}
			payload = WSError{Error: err.Error()}
		}
		if err := h.hub.SendToConversation(conn.ConversationID, payload); err != nil {
			return
		}
	}
}

func (h *ChatWSHandler) writePump(ws *websocket.Conn, conn *infraWS.Connection) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case msg, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
