package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appAssistant "github.com/puassist/backend/internal/application/assistant"
	"github.com/puassist/backend/internal/interfaces/http/response"
)

// ConversationHeader 响应头中回传的会话 ID
const ConversationHeader = "X-Conversation-ID"

// ChatHandler 聊天处理器
type ChatHandler struct {
	assistant Assistant
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(assistant Assistant) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// ChatRequest 聊天请求
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// Ask 回答一条消息
// POST /api/chat
// 未提供 conversationId 时生成新会话，并通过 X-Conversation-ID 返回
func (h *ChatHandler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400001, "invalid request body")
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	result, err := h.assistant.Ask(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, appAssistant.ErrEmptyMessage) || errors.Is(err, appAssistant.ErrEmptyConversationID) {
			response.Error(c, http.StatusBadRequest, 400002, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, 500001, err.Error())
		return
	}

	c.Header(ConversationHeader, req.ConversationID)
	c.JSON(http.StatusOK, result)
}

// End 结束会话
// DELETE /api/chat/:conversationId
func (h *ChatHandler) End(c *gin.Context) {
	id := c.Param("conversationId")
	if err := h.assistant.EndConversation(c.Request.Context(), id); err != nil {
		if errors.Is(err, appAssistant.ErrEmptyConversationID) {
			response.Error(c, http.StatusBadRequest, 400002, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, 500002, err.Error())
		return
	}
	response.Success(c, gin.H{"conversationId": id, "ended": true})
}
