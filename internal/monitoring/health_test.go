package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(hm *HealthMonitor) http.Handler {
	r := chi.NewRouter()
	hm.Register(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHealthHandler(t *testing.T) {
	hm := NewHealthMonitor(Config{
		Service:               "email-responder",
		Version:               "1.0",
		Provider:              "openai",
		CredentialsConfigured: true,
		FailureThreshold:      1,
	})
	router := newRouter(hm)

	rr := get(t, router, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "email-responder", resp.Service)
	assert.Equal(t, "1.0", resp.Version)
	assert.Contains(t, resp.Liveness.Checks, "process")
	assert.Contains(t, resp.Readiness.Checks, "llm_credentials")
	assert.Contains(t, resp.Readiness.Checks, "shutdown")

	assert.Equal(t, http.StatusOK, get(t, router, "/health/live").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health/ready").Code)
}

func TestReadinessWithoutCredentials(t *testing.T) {
	hm := NewHealthMonitor(Config{Provider: "openai"})
	router := newRouter(hm)

	assert.Equal(t, http.StatusOK, get(t, router, "/health/live").Code)

	rr := get(t, router, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "no API key configured")
}

func TestMarkShuttingDown(t *testing.T) {
	hm := NewHealthMonitor(Config{CredentialsConfigured: true})
	router := newRouter(hm)

	require.Equal(t, http.StatusOK, get(t, router, "/health/ready").Code)

	hm.MarkShuttingDown()

	rr := get(t, router, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "shutting down")
	assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/health").Code)
}

func TestProviderProbe(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	hm := NewHealthMonitor(Config{
		Provider:              "openai",
		ProviderURL:           upstream.URL,
		ProbeProvider:         true,
		CredentialsConfigured: true,
		FailureThreshold:      1,
	})
	router := newRouter(hm)

	rr := get(t, router, "/health/ready")
	assert.Equal(t, http.StatusOK, rr.Code, "a 4xx from the provider still means it is reachable")
	assert.Contains(t, rr.Body.String(), "openai_api")

	upstream.Close()
	assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/health/ready").Code)
}
