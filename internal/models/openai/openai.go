// Package openai implements responder.Completer on the OpenAI Chat Completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL is the public OpenAI endpoint.
const DefaultBaseURL = "https://api.openai.com/v1/"

// Config configures a Completer.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string        // optional, for proxies and compatible servers
	Timeout    time.Duration // optional per request timeout, 0 keeps the transport default
	HTTPClient *http.Client  // optional
	Logger     logger.Logger // optional
}

// Completer sends chat completions to OpenAI. The SDK's retry loop is
// disabled so every Complete is exactly one HTTP request.
type Completer struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// New creates a Completer. A missing API key is not rejected here: the
// service starts and requests fail with an auth failure instead.
func New(cfg Config) (*Completer, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Completer{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		logger: log.WithFields(logger.ProviderField("openai"), logger.ModelField(cfg.Model)),
	}, nil
}

// Name returns the default model name.
func (c *Completer) Name() string {
	return c.model
}

// Complete implements responder.Completer.
func (c *Completer) Complete(ctx context.Context, req responder.ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	params := openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	text, err := firstChoiceText(completion)
	if err != nil {
		return "", responder.NewFailure(responder.KindFormat, err)
	}

	c.logger.Debug("Chat completion received",
		logger.StringField("finish_reason", completion.Choices[0].FinishReason),
		logger.Int64Field("prompt_tokens", completion.Usage.PromptTokens),
		logger.Int64Field("completion_tokens", completion.Usage.CompletionTokens),
	)
	return text, nil
}

// classify tags SDK errors with a failure kind. API errors carry the HTTP
// status; everything else is a transport or decoding problem.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &responder.Failure{
			Kind:       responder.ClassifyStatus(apiErr.StatusCode),
			StatusCode: apiErr.StatusCode,
			Err:        err,
		}
	}
	return responder.NewFailure(responder.ClassifyError(err), err)
}
