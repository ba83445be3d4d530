package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultConversationID 未指定会话时使用的会话 ID
const defaultConversationID = "mcp"

// AskAssistantInput ask_assistant 工具输入
type AskAssistantInput struct {
	Message        string `json:"message" jsonschema:"The student's question (required)"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation ID used to merge clarification replies, defaults to mcp"`
}

// AskAssistantOutput ask_assistant 工具输出
type AskAssistantOutput struct {
	Reply          string   `json:"reply" jsonschema:"Main answer"`
	FollowUps      []string `json:"follow_ups" jsonschema:"Suggested follow-up questions"`
	LinkLabel      string   `json:"link_label,omitempty" jsonschema:"Label of the attached official link"`
	LinkURL        string   `json:"link_url,omitempty" jsonschema:"URL of the attached official link"`
	ConversationID string   `json:"conversation_id" jsonschema:"Conversation ID used for this call"`
}

func (s *MCPServer) askAssistantTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AskAssistantInput,
) (*mcp.CallToolResult, AskAssistantOutput, error) {
	output := AskAssistantOutput{FollowUps: []string{}}

	if strings.TrimSpace(input.Message) == "" {
		return nil, output, fmt.Errorf("message is required")
	}
	conversationID := strings.TrimSpace(input.ConversationID)
	if conversationID == "" {
		conversationID = defaultConversationID
	}
	output.ConversationID = conversationID

	result, err := s.assistant.Ask(ctx, conversationID, input.Message)
	if err != nil {
		return nil, output, err
	}

	output.Reply = result.MainAnswer
	output.FollowUps = result.FollowUpQuestions
	if result.HasLink() {
		output.LinkLabel = result.AttachedLink.Label
		output.LinkURL = result.AttachedLink.URL
	}
	return nil, output, nil
}

// InteractionStatsInput 空输入
type InteractionStatsInput struct{}

// InteractionStatsOutput 统计输出
type InteractionStatsOutput struct {
	Counts map[string]int `json:"counts" jsonschema:"Number of interactions per outcome"`
	Total  int            `json:"total" jsonschema:"Total number of interactions"`
}

func (s *MCPServer) interactionStatsTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input InteractionStatsInput,
) (*mcp.CallToolResult, InteractionStatsOutput, error) {
	counts, err := s.assistant.InteractionStats()
	if err != nil {
		return nil, InteractionStatsOutput{}, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return nil, InteractionStatsOutput{Counts: counts, Total: total}, nil
}
