package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// multipart bodies above this are spooled to disk by net/http
const maxFormMemory = 1 << 20

const welcomeMessage = "Welcome to the AI Email Responder API!"

// emailRequest is the body of POST /email/. Pointers tell absent from empty.
type emailRequest struct {
	EmailContent *string `json:"email_content"`
	Tone         *string `json:"tone"`
}

// ValidationDetail locates one problem in a rejected request body.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ErrorResponse is written for requests rejected before generation.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Details []ValidationDetail `json:"details,omitempty"`
}

type requestError struct {
	status int
	body   ErrorResponse
}

func (e *requestError) Error() string { return e.body.Error }

func invalid(details ...ValidationDetail) *requestError {
	return &requestError{
		status: http.StatusUnprocessableEntity,
		body:   ErrorResponse{Error: "invalid request", Details: details},
	}
}

func missingContent() *requestError {
	return invalid(ValidationDetail{
		Loc:  []string{"body", "email_content"},
		Msg:  "field required",
		Type: "value_error.missing",
	})
}

// bodyError maps a read or decode failure onto 413, 422 or 400.
func bodyError(err error) *requestError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &requestError{
			status: http.StatusRequestEntityTooLarge,
			body:   ErrorResponse{Error: "request body too large"},
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, typeErr.Field)
		}
		return invalid(ValidationDetail{Loc: loc, Msg: "str type expected", Type: "type_error.str"})
	}
	return badBody()
}

func badBody() *requestError {
	return &requestError{
		status: http.StatusBadRequest,
		body:   ErrorResponse{Error: "invalid request body"},
	}
}

// decodeEmailRequest accepts a JSON object or a url-encoded/multipart form.
func decodeEmailRequest(r *http.Request) (responder.Request, *requestError) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxFormMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return responder.Request{}, bodyError(err)
		}
		content, ok := r.PostForm["email_content"]
		if !ok || len(content) == 0 {
			return responder.Request{}, missingContent()
		}
		return responder.Request{
			Message: content[0],
			Tone:    responder.Tone(r.PostForm.Get("tone")),
		}, nil

	default:
		dec := json.NewDecoder(r.Body)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return responder.Request{}, missingContent()
			}
			return responder.Request{}, bodyError(err)
		}
		// exactly one JSON object, nothing after it
		if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
			if err == nil {
				return responder.Request{}, badBody()
			}
			return responder.Request{}, bodyError(err)
		}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
			return responder.Request{}, badBody()
		}

		var body emailRequest
		if err := json.Unmarshal(raw, &body); err != nil {
			return responder.Request{}, bodyError(err)
		}
		if body.EmailContent == nil {
			return responder.Request{}, missingContent()
		}
		req := responder.Request{Message: *body.EmailContent}
		if body.Tone != nil {
			req.Tone = responder.Tone(*body.Tone)
		}
		return req, nil
	}
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.GetLoggerFromContext(r.Context(), s.log)

	req, reqErr := decodeEmailRequest(r)
	if reqErr != nil {
		log.Warn("Rejected email request",
			logger.HTTPStatusField(reqErr.status),
			logger.StringField("reason", reqErr.body.Error))
		s.writeJSON(w, reqErr.status, reqErr.body)
		return
	}

	log.Debug("Email reply requested",
		logger.IntField("email_length", len(req.Message)),
		logger.StringField("tone", string(req.Tone)))

	outcome := s.generator.Generate(r.Context(), req)

	status := http.StatusOK
	if !outcome.OK() && s.cfg.Generation.StrictStatusCodes {
		status = outcome.Failure().Kind.HTTPStatus()
	}
	s.writeJSON(w, status, outcome)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.UI.Enabled {
		s.writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
		return
	}
	s.render(w, r, "landing.html", landingPage{
		Title:   s.cfg.UI.Title,
		AppPath: s.cfg.RootPath + s.uiMountPath() + "/",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.log.Error("Failed to encode response", logger.ErrorField(err))
	}
}
