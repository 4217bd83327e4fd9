package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveProbe(t *testing.T, handler http.HandlerFunc) (int, HealthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return w.Code, response
}

func TestLivenessHandler(t *testing.T) {
	t.Run("healthy response", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck(&mockCheck{name: "process"})

		code, response := serveProbe(t, h.LivenessHandler())

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "ok", response.Checks["process"].Status)
		assert.NotEmpty(t, response.Checks["process"].Latency)
	})

	t.Run("no checks returns healthy", func(t *testing.T) {
		code, response := serveProbe(t, New().LivenessHandler())

		assert.Equal(t, http.StatusOK, code)
		assert.Empty(t, response.Checks)
	})
}

func TestReadinessHandler(t *testing.T) {
	h := New(WithFailureThreshold(1))
	h.AddReadinessCheck(&mockCheck{name: "credentials"})
	h.AddReadinessCheck(&mockCheck{name: "llm_provider", err: errors.New("service unavailable")})

	code, response := serveProbe(t, h.ReadinessHandler())

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Contains(t, response.Message, "llm_provider")
	assert.Equal(t, "ok", response.Checks["credentials"].Status)
	assert.Equal(t, "error", response.Checks["llm_provider"].Status)
	assert.Equal(t, "service unavailable", response.Checks["llm_provider"].Error)
}

func TestNewHealthResponse(t *testing.T) {
	response := NewHealthResponse(&HealthStatus{
		Healthy: false,
		Checks:  []CheckResult{{Name: "a", Healthy: false, Error: "boom"}},
	}, errors.New("a: boom"))

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "a: boom", response.Message)
	assert.Equal(t, CheckStatus{Status: "error", Error: "boom", Latency: "0s"}, response.Checks["a"])
}
