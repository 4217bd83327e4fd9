// Package gemini implements responder.Completer on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// DefaultBaseURL is the public Gemini endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/"

// Config configures a Completer.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Completer sends generateContent requests to Gemini.
type Completer struct {
	client *genai.Client
	model  string
	logger logger.Logger

	// set instead of client when no API key was configured
	unavailable error
}

// New creates a Completer. The genai client cannot be built without an API
// key, so in that case the completer is created without one and every
// Complete fails with an auth failure, like the other providers.
func New(ctx context.Context, cfg Config) (*Completer, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithFields(logger.ProviderField("gemini"), logger.ModelField(model))

	if cfg.APIKey == "" {
		return &Completer{
			model:       model,
			logger:      log,
			unavailable: responder.NewFailure(responder.KindAuth, errors.New("gemini API key is not configured")),
		}, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Completer{
		client: client,
		model:  model,
		logger: log,
	}, nil
}

// Name returns the default model name.
func (c *Completer) Name() string {
	return c.model
}

// Complete implements responder.Completer.
func (c *Completer) Complete(ctx context.Context, req responder.ChatRequest) (string, error) {
	if c.unavailable != nil {
		return "", c.unavailable
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if system := req.System(); system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, userContents(req.Messages), config)
	if err != nil {
		return "", classify(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", responder.NewFailure(responder.KindFormat, fmt.Errorf("no candidates in response"))
	}

	c.logger.Debug("Gemini content received",
		logger.StringField("finish_reason", string(resp.Candidates[0].FinishReason)))
	return resp.Text(), nil
}

func userContents(messages []responder.ChatMessage) []*genai.Content {
	var out []*genai.Content
	for _, m := range messages {
		if m.Role == responder.RoleSystem {
			continue
		}
		out = append(out, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	return out
}

// classify maps genai API errors by HTTP code. The SDK has returned both
// value and pointer forms across releases.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return statusFailure(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return statusFailure(apiErrPtr.Code, err)
	}
	return responder.NewFailure(responder.ClassifyError(err), err)
}

func statusFailure(code int, err error) *responder.Failure {
	return &responder.Failure{
		Kind:       responder.ClassifyStatus(code),
		StatusCode: code,
		Err:        err,
	}
}
