package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// ErrorPrefix marks a failed generation in the form's output box.
const ErrorPrefix = "⚠️ Error: "

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type landingPage struct {
	Title   string
	AppPath string
}

type formPage struct {
	Title    string
	Tones    []responder.Tone
	Selected responder.Tone
	Message  string
	Output   string
	Failed   bool
}

func (s *Server) newFormPage() formPage {
	return formPage{
		Title:    s.cfg.UI.Title,
		Tones:    responder.Tones,
		Selected: responder.DefaultTone,
	}
}

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "form.html", s.newFormPage())
}

// handleFormSubmit runs the same generation as the API. The tone is limited
// to the radio choices.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		reqErr := bodyError(err)
		http.Error(w, reqErr.body.Error, reqErr.status)
		return
	}

	page := s.newFormPage()
	page.Message = r.PostForm.Get("email_content")
	if tone := responder.Tone(r.PostForm.Get("tone")); tone.Recognized() {
		page.Selected = tone
	}

	outcome := s.generator.Generate(r.Context(), responder.Request{
		Message: page.Message,
		Tone:    page.Selected,
	})
	if outcome.OK() {
		page.Output = outcome.Reply()
	} else {
		page.Output = ErrorPrefix + outcome.ErrorMessage()
		page.Failed = true
	}

	s.render(w, r, "form.html", page)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		logger.GetLoggerFromContext(r.Context(), s.log).Error("Failed to render page",
			logger.StringField("template", name), logger.ErrorField(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
