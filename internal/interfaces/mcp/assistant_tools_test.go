package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

type fakeAssistant struct {
	lastConversation string
	lastMessage      string
	result           *domain.AnswerResult
	err              error
	stats            map[string]int
}

func (f *fakeAssistant) Ask(_ context.Context, conversationID, message string) (*domain.AnswerResult, error) {
	f.lastConversation = conversationID
	f.lastMessage = message
	return f.result, f.err
}

func (f *fakeAssistant) InteractionStats() (map[string]int, error) {
	return f.stats, f.err
}

func TestAskAssistantTool(t *testing.T) {
	fake := &fakeAssistant{result: &domain.AnswerResult{
		MainAnswer:        "Apply online.",
		FollowUpQuestions: []string{"Fee structure"},
		AttachedLink:      &domain.Link{Label: "Apply here", URL: "https://admissions.puchd.ac.in"},
	}}
	s := NewServer(fake)

	_, out, err := s.askAssistantTool(context.Background(), nil, AskAssistantInput{Message: "how to apply"})
	require.NoError(t, err)
	assert.Equal(t, "mcp", fake.lastConversation)
	assert.Equal(t, "how to apply", fake.lastMessage)
	assert.Equal(t, "Apply online.", out.Reply)
	assert.Equal(t, []string{"Fee structure"}, out.FollowUps)
	assert.Equal(t, "Apply here", out.LinkLabel)
	assert.Equal(t, "https://admissions.puchd.ac.in", out.LinkURL)
	assert.Equal(t, "mcp", out.ConversationID)
}

func TestAskAssistantTool_ConversationAndValidation(t *testing.T) {
	fake := &fakeAssistant{result: domain.NewFallbackAnswer()}
	s := NewServer(fake)

	_, out, err := s.askAssistantTool(context.Background(), nil, AskAssistantInput{Message: "hostel", ConversationID: "c9"})
	require.NoError(t, err)
	assert.Equal(t, "c9", fake.lastConversation)
	assert.Empty(t, out.LinkURL)

	_, _, err = s.askAssistantTool(context.Background(), nil, AskAssistantInput{Message: "  "})
	assert.Error(t, err)

	fake.err = errors.New("boom")
	_, _, err = s.askAssistantTool(context.Background(), nil, AskAssistantInput{Message: "x"})
	assert.Error(t, err)
}

func TestInteractionStatsTool(t *testing.T) {
	s := NewServer(&fakeAssistant{stats: map[string]int{"answered": 3, "fallback": 1}})

	_, out, err := s.interactionStatsTool(context.Background(), nil, InteractionStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 3, out.Counts["answered"])
	assert.NotNil(t, s.GetHandler())
}
