package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/internal/responder/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFormPage(t *testing.T) {
	cfg := loadConfig(t, nil)
	s := newTestServer(t, cfg, mocks.NewCompleter(t))

	rr := do(t, s.Handler(), http.MethodGet, "/gui/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	page := rr.Body.String()
	assert.Contains(t, page, "<title>TedAk AI Email Assistant</title>")
	for _, tone := range []string{"Formal", "Casual", "Friendly"} {
		assert.Contains(t, page, `value="`+tone+`"`)
	}
	assert.Contains(t, page, `value="Formal" checked`)
}

func TestFormRedirectsToTrailingSlash(t *testing.T) {
	cfg := loadConfig(t, nil)
	s := newTestServer(t, cfg, mocks.NewCompleter(t))

	rr := do(t, s.Handler(), http.MethodGet, "/gui", "", "")
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/gui/", rr.Header().Get("Location"))
}

func TestFormSubmit(t *testing.T) {
	cfg := loadConfig(t, nil)
	c := mocks.NewCompleter(t)
	c.EXPECT().Complete(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, req responder.ChatRequest) {
			assert.Contains(t, userPrompt(req), "Generate a Casual email response")
		}).
		Return("  Hey! No worries, we'll sort it out.  ", nil).Once()

	s := newTestServer(t, cfg, c)
	form := url.Values{"email_content": {"Where is my <parcel>?"}, "tone": {"Casual"}}
	rr := do(t, s.Handler(), http.MethodPost, "/gui/", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusOK, rr.Code)
	page := rr.Body.String()
	assert.Contains(t, page, "Hey! No worries, we&#39;ll sort it out.</textarea>")
	assert.Contains(t, page, "Where is my &lt;parcel&gt;?")
	assert.Contains(t, page, `value="Casual" checked`)
}

func TestFormSubmitFailure(t *testing.T) {
	cfg := loadConfig(t, nil)
	c := mocks.NewCompleter(t)
	c.EXPECT().Complete(mock.Anything, mock.Anything).
		Return("", responder.NewFailure(responder.KindNetwork, errors.New("Connection error."))).Once()

	s := newTestServer(t, cfg, c)
	form := url.Values{"email_content": {"Hello"}, "tone": {"Formal"}}
	rr := do(t, s.Handler(), http.MethodPost, "/gui/", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrorPrefix+"Connection error.")
}

func TestFormSubmitCoercesUnknownTone(t *testing.T) {
	cfg := loadConfig(t, nil)
	c := mocks.NewCompleter(t)
	c.EXPECT().Complete(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, req responder.ChatRequest) {
			assert.Contains(t, userPrompt(req), "Generate a Formal email response")
		}).
		Return("ok", nil).Once()

	s := newTestServer(t, cfg, c)
	form := url.Values{"email_content": {"Hello"}, "tone": {"Sarcastic"}}
	rr := do(t, s.Handler(), http.MethodPost, "/gui/", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusOK, rr.Code)
}
