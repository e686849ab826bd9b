package chatbot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/sessions"
)

func setupChatRouter(t *testing.T, client llm.Client, store *sessions.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &Service{Assembler: &Assembler{Sessions: store}, LLM: client, Model: "gemini-2.5-flash"}
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return resp, out
}

func TestChatbotSuccess(t *testing.T) {
	store, id := storedSession(t, sessions.Analysis{MatchScore: 72})
	client := new(mockLLM)
	client.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.SystemInstruction, "72") && len(req.Messages) == 2
	})).Return("Your score is 72.", nil).Once()

	router := setupChatRouter(t, client, store)
	payload, _ := json.Marshal(map[string]any{
		"message":        "What's my score?",
		"messageHistory": []Message{{Sender: "bot", Text: "Hi! Ask me anything."}},
		"sessionId":      id,
	})
	resp, body := postChat(t, router, string(payload))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Your score is 72.", body["data"])
	client.AssertExpectations(t)
}

func TestChatbotInvalidMessageKeeps500(t *testing.T) {
	client := new(mockLLM)
	router := setupChatRouter(t, client, sessions.NewStore())

	resp, body := postChat(t, router, `{"message":"   "}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to generate response from chatbot.", body["error"])
	assert.Equal(t, "Message is required and must be a non-empty string.", body["details"])
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestChatbotNonStringMessageIsInvalid(t *testing.T) {
	client := new(mockLLM)
	router := setupChatRouter(t, client, sessions.NewStore())

	for _, payload := range []string{`{"message":5}`, `{"message":["hi"]}`, `{"message":{"text":"hi"}}`} {
		resp, body := postChat(t, router, payload)

		assert.Equal(t, http.StatusInternalServerError, resp.Code, payload)
		assert.Equal(t, false, body["success"], payload)
		assert.Equal(t, "Message is required and must be a non-empty string.", body["details"], payload)
	}
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestChatbotMissingMessageIsInvalid(t *testing.T) {
	router := setupChatRouter(t, new(mockLLM), sessions.NewStore())

	resp, body := postChat(t, router, `{}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Message is required and must be a non-empty string.", body["details"])
}

func TestChatbotMalformedJSON(t *testing.T) {
	router := setupChatRouter(t, new(mockLLM), sessions.NewStore())

	resp, body := postChat(t, router, `{"message":`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Failed to generate response from chatbot.", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestChatbotModelFailure(t *testing.T) {
	client := new(mockLLM)
	client.On("Generate", mock.Anything, mock.Anything).Return("", llm.ErrEmptyResponse).Once()
	router := setupChatRouter(t, client, sessions.NewStore())

	resp, body := postChat(t, router, `{"message":"hello","sessionId":"unknown"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, body["details"], "llm returned empty response")
}
