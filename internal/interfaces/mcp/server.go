package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

// Assistant MCP 工具依赖的问答能力
type Assistant interface {
	Ask(ctx context.Context, conversationID, message string) (*domain.AnswerResult, error)
	InteractionStats() (map[string]int, error)
}

// MCPServer MCP 服务器
type MCPServer struct {
	server    *mcp.Server
	handler   http.Handler
	assistant Assistant
}

// NewServer 创建 MCP 服务器
func NewServer(assistant Assistant) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pu-assistant",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	s := &MCPServer{
		server:    server,
		assistant: assistant,
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "ask_assistant",
		Description: `Ask the Panjab University helpdesk assistant a question. Answers are grounded in official university documents.

Parameters:
- message (string, required): The student's question, e.g. "What is the fee for B.Tech at UIET?"
- conversation_id (string, optional): Reuse the same ID across calls so clarification follow-ups are merged with the earlier question. Defaults to "mcp".

Returns: the reply, suggested follow-up questions, and an official link when one applies.`,
	}, s.askAssistantTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_interaction_stats",
		Description: "Count answered queries by outcome (answered, clarifying, fallback). No parameters required.",
	}, s.interactionStatsTool)

	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil,
	)
	return s
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Server 底层 MCP 服务器
func (s *MCPServer) Server() *mcp.Server {
	return s.server
}
