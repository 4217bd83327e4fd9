package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNew(t *testing.T) {
	c, err := New(context.Background(), Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Name())

	c, err = New(context.Background(), Config{APIKey: "test-key", Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", c.Name())
}

func TestNewWithoutAPIKey(t *testing.T) {
	c, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Name())

	_, err = c.Complete(context.Background(), responder.ChatRequest{
		Messages: []responder.ChatMessage{{Role: responder.RoleUser, Content: "hi"}},
	})
	var f *responder.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, responder.KindAuth, f.Kind)
	assert.Contains(t, f.Error(), "API key")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   responder.FailureKind
		wantStatus int
	}{
		{"unauthenticated", genai.APIError{Code: 401, Message: "API key not valid", Status: "UNAUTHENTICATED"}, responder.KindAuth, 401},
		{"permission denied", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, responder.KindAuth, 403},
		{"resource exhausted", fmt.Errorf("generate: %w", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}), responder.KindQuota, 429},
		{"internal", genai.APIError{Code: 500, Status: "INTERNAL"}, responder.KindProvider, 500},
		{"deadline", context.DeadlineExceeded, responder.KindTimeout, 0},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, responder.KindNetwork, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *responder.Failure
			require.True(t, errors.As(classify(tt.err), &f))
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantStatus, f.StatusCode)
			assert.Equal(t, tt.err.Error(), f.Error())
		})
	}
}
