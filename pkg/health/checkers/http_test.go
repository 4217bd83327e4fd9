package checkers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPChecker(t *testing.T) {
	statusServer := func(code int, gotMethod *string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gotMethod != nil {
				*gotMethod = r.Method
			}
			w.WriteHeader(code)
		}))
	}

	t.Run("name defaults to URL", func(t *testing.T) {
		assert.Equal(t, "openai", NewHTTPChecker("openai", "http://x").Name())
		assert.Equal(t, "http://x", NewHTTPChecker("", "http://x").Name())
	})

	for _, code := range []int{200, 204, 401, 404} {
		t.Run("reachable with "+http.StatusText(code), func(t *testing.T) {
			server := statusServer(code, nil)
			defer server.Close()

			assert.NoError(t, NewHTTPChecker("api", server.URL).Check(context.Background()))
		})
	}

	for _, code := range []int{500, 502, 503} {
		t.Run("unhealthy with "+http.StatusText(code), func(t *testing.T) {
			server := statusServer(code, nil)
			defer server.Close()

			err := NewHTTPChecker("api", server.URL).Check(context.Background())
			assert.ErrorContains(t, err, "unhealthy status code")
		})
	}

	t.Run("custom method", func(t *testing.T) {
		var method string
		server := statusServer(http.StatusOK, &method)
		defer server.Close()

		assert.NoError(t, NewHTTPChecker("api", server.URL, WithMethod(http.MethodHead)).Check(context.Background()))
		assert.Equal(t, http.MethodHead, method)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := statusServer(http.StatusOK, nil)
		url := server.URL
		server.Close()

		assert.ErrorContains(t, NewHTTPChecker("api", url).Check(context.Background()), "http request failed")
	})

	t.Run("client timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		checker := NewHTTPChecker("api", server.URL, WithClient(&http.Client{Timeout: 20 * time.Millisecond}))
		assert.Error(t, checker.Check(context.Background()))
	})
}
