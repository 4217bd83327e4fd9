package httpmiddleware

import (
	"net/http"

	"github.com/lewisedginton/email_responder/pkg/logger"
)

// CorrelationID makes sure every request carries a correlation ID in its header
// and context. A client supplied X-Correlation-ID is honoured when it is a valid
// UUID, otherwise a fresh one is generated. The ID is echoed on the response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, id := logger.EnsureHTTPCorrelationID(r)
			w.Header().Set(logger.CorrelationIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}
