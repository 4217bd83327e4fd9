// Package anthropic implements responder.Completer on the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/lewisedginton/email_responder/internal/responder"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// DefaultBaseURL is the public Anthropic endpoint.
const DefaultBaseURL = "https://api.anthropic.com/"

// Anthropic requires max_tokens on every request.
const defaultMaxTokens = 1024

// Config configures a ClaudeCompleter.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logger.Logger
}

// ClaudeCompleter sends single-turn message requests to Claude.
type ClaudeCompleter struct {
	client anthropic.Client
	model  string
	logger logger.Logger
}

// NewClaudeCompleter creates a completer. Extra request options are applied
// after the ones derived from cfg.
func NewClaudeCompleter(cfg Config, opts ...option.RequestOption) (*ClaudeCompleter, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		base = append(base, option.WithHTTPClient(cfg.HTTPClient))
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ClaudeCompleter{
		client: anthropic.NewClient(append(base, opts...)...),
		model:  model,
		logger: log.WithFields(logger.ProviderField("claude"), logger.ModelField(model)),
	}, nil
}

// Name returns the default model name.
func (c *ClaudeCompleter) Name() string {
	return c.model
}

// Complete implements responder.Completer.
func (c *ClaudeCompleter) Complete(ctx context.Context, req responder.ChatRequest) (string, error) {
	params := c.buildParams(req)

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	text, err := messageText(message)
	if err != nil {
		return "", responder.NewFailure(responder.KindFormat, err)
	}

	c.logger.Debug("Claude message received",
		logger.StringField("stop_reason", string(message.StopReason)),
		logger.Int64Field("input_tokens", message.Usage.InputTokens),
		logger.Int64Field("output_tokens", message.Usage.OutputTokens),
	)
	return text, nil
}

func (c *ClaudeCompleter) buildParams(req responder.ChatRequest) anthropic.MessageNewParams {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Messages:    toClaudeMessages(req.Messages),
		Temperature: anthropic.Float(req.Temperature),
	}
	if system := req.System(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	return params
}

func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &responder.Failure{
			Kind:       responder.ClassifyStatus(apiErr.StatusCode),
			StatusCode: apiErr.StatusCode,
			Err:        fmt.Errorf("claude API error: %w", err),
		}
	}
	return responder.NewFailure(responder.ClassifyError(err), err)
}
