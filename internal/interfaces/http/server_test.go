package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
	infraWS "github.com/puassist/backend/internal/infrastructure/websocket"
	"github.com/puassist/backend/internal/interfaces/http/handler"
	"github.com/puassist/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssistant struct{}

func (stubAssistant) Ask(_ context.Context, _, message string) (*domain.AnswerResult, error) {
	return &domain.AnswerResult{MainAnswer: "echo: " + message, FollowUpQuestions: []string{}}, nil
}

func (stubAssistant) EndConversation(context.Context, string) error { return nil }

func (stubAssistant) RecentInteractions(int) ([]*domain.Interaction, error) {
	return []*domain.Interaction{}, nil
}

func (stubAssistant) InteractionStats() (map[string]int, error) { return map[string]int{}, nil }

func newTestServer(t *testing.T, staticDir string) *HTTPServer {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Server.StaticDir = staticDir

	a := stubAssistant{}
	return NewServer(
		&cfg.Server,
		handler.NewChatHandler(a),
		handler.NewChatWSHandler(a, infraWS.NewHub(), cfg),
		handler.NewInteractionHandler(a),
		nil,
	)
}

func TestServer_Routes(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "pu_fee_structure.pdf"), []byte("%PDF-1.4"), 0644))
	s := newTestServer(t, static)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"chat", http.MethodPost, "/api/chat", `{"conversationId":"c1","message":"hi"}`, http.StatusOK},
		{"end", http.MethodDelete, "/api/chat/c1", "", http.StatusOK},
		{"interactions", http.MethodGet, "/api/v1/interactions", "", http.StatusOK},
		{"fee pdf", http.MethodGet, "/files/pu_fee_structure.pdf", "", http.StatusOK},
		{"missing file", http.MethodGet, "/files/nope.pdf", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestServer_StaticDirMissing(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/pu_fee_structure.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
