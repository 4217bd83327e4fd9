package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-123",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "  Dear customer, thank you.  \n"},
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 40, "completion_tokens": 12, "total_tokens": 52}
}`

type recordedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *recordedRequest, *http.Header) {
	t.Helper()
	var calls atomic.Int32
	var got recordedRequest
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls, &got, &headers
}

func newCompleter(t *testing.T, baseURL string) *Completer {
	t.Helper()
	c, err := New(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: baseURL + "/"})
	require.NoError(t, err)
	return c
}

func chatRequest() responder.ChatRequest {
	return responder.ChatRequest{
		Messages: []responder.ChatMessage{
			{Role: responder.RoleSystem, Content: responder.DefaultSystemPrompt},
			{Role: responder.RoleUser, Content: responder.BuildPrompt("Where is my order?", "Formal")},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}
}

func TestNew(t *testing.T) {
	_, err := New(Config{APIKey: "key"})
	assert.Error(t, err)

	c, err := New(Config{Model: "gpt-4o-mini"})
	require.NoError(t, err, "an empty API key is accepted at construction")
	assert.Equal(t, "gpt-4o-mini", c.Name())
}

func TestCompleteSendsConversation(t *testing.T) {
	server, calls, got, headers := newTestServer(t, http.StatusOK, completionBody)
	c := newCompleter(t, server.URL)

	text, err := c.Complete(context.Background(), chatRequest())
	require.NoError(t, err)

	assert.Equal(t, "  Dear customer, thank you.  \n", text, "text is returned untrimmed")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Bearer test-key", headers.Get("Authorization"))

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	assert.Equal(t, int64(500), got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, responder.DefaultSystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Where is my order?")
}

func TestCompleteModelOverride(t *testing.T) {
	server, _, got, _ := newTestServer(t, http.StatusOK, completionBody)
	c := newCompleter(t, server.URL)

	req := chatRequest()
	req.Model = "gpt-4o"
	_, err := c.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   responder.FailureKind
		wantStatus int
	}{
		{
			name:       "invalid key",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantKind:   responder.KindAuth,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`,
			wantKind:   responder.KindQuota,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"message":"The server had an error","type":"server_error"}}`,
			wantKind:   responder.KindProvider,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:     "no choices",
			status:   http.StatusOK,
			body:     `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`,
			wantKind: responder.KindFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls, _, _ := newTestServer(t, tt.status, tt.body)
			c := newCompleter(t, server.URL)

			text, err := c.Complete(context.Background(), chatRequest())
			require.Error(t, err)
			assert.Empty(t, text)

			var f *responder.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantStatus, f.StatusCode)
			assert.NotEmpty(t, f.Error())
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}

func TestCompleteNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := newCompleter(t, url)
	_, err := c.Complete(context.Background(), chatRequest())
	require.Error(t, err)

	var f *responder.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, responder.KindNetwork, f.Kind)
}
