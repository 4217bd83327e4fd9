package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder.Body.String()
}

func getRandomHighPort() int {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Intn(16384) + 49152
}

func TestMetrics_Listen(t *testing.T) {
	m := NewMetrics(true, false, logger.NewNopLogger())
	port := getRandomHighPort()
	errChan, closer := m.Listen(port)

	for i := 0; i < 5; i++ {
		m.IncrementHTTPResponseCounter(200)
		m.IncrementHTTPResponseCounter(404)
	}

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(fmt.Sprintf("http://localhost:%d/metrics", port))
		return err == nil
	}, 2*time.Second, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "email_responder_total_200_http_responses 5")
	assert.Contains(t, string(body), "email_responder_total_404_http_responses 5")

	resp, err = http.Get(fmt.Sprintf("http://localhost:%d/", port))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	require.NoError(t, closer(context.Background()))
	assert.True(t, errors.Is(<-errChan, http.ErrServerClosed))
}

func TestMetrics_AddCustomMetric(t *testing.T) {
	m := NewMetrics(false, false, logger.NewNopLogger())

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: "test",
		Name:      "foo1",
		Help:      "foo 1 help",
	})
	m.AddCustomMetric(counter)

	assert.Equal(t, "# HELP test_foo1 foo 1 help\n# TYPE test_foo1 counter\ntest_foo1 0\n", scrape(t, m))

	counter.Inc()
	assert.Contains(t, scrape(t, m), "test_foo1 1")
}

func TestHTTPMiddleware(t *testing.T) {
	m := NewMetrics(true, false, logger.NewNopLogger())

	handler := m.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/error" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("success"))
	}))

	for _, path := range []string{"/email/", "/email/", "/error"} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, path, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.TotalHTTPRequestsCounter))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPResponseCounters[http.StatusOK]))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPResponseCounters[http.StatusInternalServerError]))
	assert.Contains(t, scrape(t, m), "email_responder_http_request_duration_seconds_count 3")
}

func TestHTTPMiddlewareDisabled(t *testing.T) {
	m := NewMetrics(false, false, logger.NewNopLogger())

	recorder := httptest.NewRecorder()
	m.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.False(t, strings.Contains(scrape(t, m), "http_responses"))
}

func TestObserveGeneration(t *testing.T) {
	m := NewMetrics(false, true, logger.NewNopLogger())

	m.ObserveGeneration(OutcomeSuccess, "Formal", 1200*time.Millisecond)
	m.ObserveGeneration(OutcomeSuccess, "Formal", 800*time.Millisecond)
	m.ObserveGeneration("auth", "Casual", 50*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.GenerationCounter.WithLabelValues(OutcomeSuccess, "Formal")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GenerationCounter.WithLabelValues("auth", "Casual")))
	assert.Contains(t, scrape(t, m), `email_responder_generation_duration_seconds_count{outcome="success"} 2`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveGeneration(OutcomeSuccess, "Formal", time.Second)
		m.IncrementHTTPResponseCounter(200)
	})

	recorder := httptest.NewRecorder()
	m.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
