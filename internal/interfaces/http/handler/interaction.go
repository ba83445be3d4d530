package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/puassist/backend/internal/interfaces/http/response"
)

const (
	defaultInteractionLimit = 50
	maxInteractionLimit     = 500
)

// InteractionHandler 交互记录处理器
type InteractionHandler struct {
	reader InteractionReader
}

// NewInteractionHandler 创建交互记录处理器
func NewInteractionHandler(reader InteractionReader) *InteractionHandler {
	return &InteractionHandler{reader: reader}
}

// List 最近的交互记录
// GET /api/v1/interactions?limit=50
func (h *InteractionHandler) List(c *gin.Context) {
	limit := defaultInteractionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, 400003, "limit must be a positive integer")
			return
		}
		limit = min(n, maxInteractionLimit)
	}

	items, err := h.reader.RecentInteractions(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 500003, err.Error())
		return
	}
	response.SuccessList(c, items, len(items))
}

// Stats 按结果统计
// GET /api/v1/interactions/stats
func (h *InteractionHandler) Stats(c *gin.Context) {
	stats, err := h.reader.InteractionStats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 500004, err.Error())
		return
	}
	response.Success(c, stats)
}
