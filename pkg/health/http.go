package health

import (
	"encoding/json"
	"net/http"

	"github.com/lewisedginton/email_responder/pkg/logger"
)

// HealthResponse is the JSON body written by the probe handlers.
type HealthResponse struct {
	Status  string                 `json:"status"` // healthy or unhealthy
	Checks  map[string]CheckStatus `json:"checks,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// CheckStatus reports one check inside a HealthResponse.
type CheckStatus struct {
	Status  string `json:"status"` // ok or error
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// NewHealthResponse converts a HealthStatus and its aggregate error into the wire shape.
func NewHealthResponse(status *HealthStatus, err error) HealthResponse {
	response := HealthResponse{Status: "healthy", Checks: make(map[string]CheckStatus, len(status.Checks))}
	if !status.Healthy {
		response.Status = "unhealthy"
		if err != nil {
			response.Message = err.Error()
		}
	}
	for _, r := range status.Checks {
		cs := CheckStatus{Status: "ok", Latency: r.Latency.String()}
		if !r.Healthy {
			cs.Status = "error"
			cs.Error = r.Error
		}
		response.Checks[r.Name] = cs
	}
	return response
}

// LivenessHandler answers 200 while the process is alive and 503 when it should be restarted.
func (h *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.CheckLiveness(r.Context())
		h.write(w, status, err)
	}
}

// ReadinessHandler answers 200 when the service can take traffic and 503 otherwise.
func (h *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.CheckReadiness(r.Context())
		h.write(w, status, err)
	}
}

func (h *HealthChecker) write(w http.ResponseWriter, status *HealthStatus, err error) {
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if encErr := json.NewEncoder(w).Encode(NewHealthResponse(status, err)); encErr != nil {
		h.logger.Error("Failed to encode health response", logger.ErrorField(encErr))
	}
}
