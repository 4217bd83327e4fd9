// Package responder turns a customer email and a tone into a generated reply.
package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/lewisedginton/email_responder/pkg/metrics"
	"github.com/lewisedginton/email_responder/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSystemPrompt sets the assistant persona.
const DefaultSystemPrompt = "You are a helpful customer support assistant."

const tracerName = "github.com/lewisedginton/email_responder/internal/responder"

// Settings are the fixed sampling parameters applied to every generation.
type Settings struct {
	Model        string
	Temperature  float64
	MaxTokens    int64
	SystemPrompt string
	DefaultTone  Tone
	Provider     string // used for logging and span attributes only
}

// DefaultSettings returns gpt-4o-mini at temperature 0.7 with 500 output tokens.
func DefaultSettings() Settings {
	return Settings{
		Model:        "gpt-4o-mini",
		Temperature:  0.7,
		MaxTokens:    500,
		SystemPrompt: DefaultSystemPrompt,
		DefaultTone:  DefaultTone,
		Provider:     "openai",
	}
}

// Generator drives one completion round trip per request. It holds no
// request state and is safe for concurrent use when its Completer is.
type Generator struct {
	completer Completer
	settings  Settings
	logger    logger.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithSettings replaces DefaultSettings. Empty fields keep their defaults.
func WithSettings(s Settings) Option {
	return func(g *Generator) {
		d := g.settings
		if s.Model == "" {
			s.Model = d.Model
		}
		if s.MaxTokens <= 0 {
			s.MaxTokens = d.MaxTokens
		}
		if s.SystemPrompt == "" {
			s.SystemPrompt = d.SystemPrompt
		}
		if s.DefaultTone == "" {
			s.DefaultTone = d.DefaultTone
		}
		if s.Provider == "" {
			s.Provider = d.Provider
		}
		g.settings = s
	}
}

// WithLogger sets the base logger. Request loggers add the correlation ID from context.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithMetrics records generation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// NewGenerator creates a Generator around an already constructed completer.
func NewGenerator(c Completer, opts ...Option) (*Generator, error) {
	if c == nil {
		return nil, fmt.Errorf("completer is required")
	}
	g := &Generator{
		completer: c,
		settings:  DefaultSettings(),
		logger:    logger.NewNopLogger(),
		tracer:    telemetry.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the effective sampling settings.
func (g *Generator) Settings() Settings {
	return g.settings
}

// ChatRequest builds the two-message conversation sent for req.
func (g *Generator) ChatRequest(req Request) ChatRequest {
	tone := req.Tone.Or(g.settings.DefaultTone)
	return ChatRequest{
		Model: g.settings.Model,
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: g.settings.SystemPrompt},
			{Role: RoleUser, Content: BuildPrompt(req.Message, tone.String())},
		},
		Temperature: g.settings.Temperature,
		MaxTokens:   g.settings.MaxTokens,
	}
}

// Generate makes exactly one completion call and normalizes its result. It
// never returns an error: every failure becomes an error Outcome. The call
// runs detached from ctx cancellation so a disconnecting caller does not
// abort it, while ctx values such as the correlation ID are kept.
func (g *Generator) Generate(ctx context.Context, req Request) Outcome {
	tone := req.Tone.Or(g.settings.DefaultTone)
	log := logger.GetLoggerFromContext(ctx, g.logger).WithFields(
		logger.ProviderField(g.settings.Provider),
		logger.ModelField(g.settings.Model),
		logger.StringField("tone", tone.String()),
	)

	callCtx, span := g.tracer.Start(context.WithoutCancel(ctx), "responder.Generate",
		trace.WithAttributes(
			attribute.String("llm.provider", g.settings.Provider),
			attribute.String("llm.model", g.settings.Model),
			attribute.String("reply.tone", tone.String()),
			attribute.Int("email.length", len(req.Message)),
		),
	)

	start := time.Now()
	text, err := g.complete(callCtx, g.ChatRequest(req))
	elapsed := time.Since(start)

	if err != nil {
		outcome := Failed(err)
		f := outcome.Failure()
		span.SetAttributes(attribute.String("failure.kind", string(f.Kind)))
		telemetry.End(span, f)
		g.metrics.ObserveGeneration(string(f.Kind), toneLabel(tone), elapsed)

		fields := []logger.LogField{
			logger.StringField("failure_kind", string(f.Kind)),
			logger.ErrorField(f),
			logger.DurationField("latency", elapsed),
		}
		if f.StatusCode != 0 {
			fields = append(fields, logger.HTTPStatusField(f.StatusCode))
		}
		switch f.Kind {
		case KindNetwork, KindTimeout:
			log.Warn("Reply generation failed", fields...)
		default:
			log.Error("Reply generation failed", fields...)
		}
		return outcome
	}

	reply := strings.TrimSpace(text)
	telemetry.End(span, nil)
	g.metrics.ObserveGeneration(metrics.OutcomeSuccess, toneLabel(tone), elapsed)
	log.Info("Reply generated",
		logger.IntField("reply_length", len(reply)),
		logger.DurationField("latency", elapsed),
	)
	return Succeeded(reply)
}

// complete shields Generate from a panicking completer.
func (g *Generator) complete(ctx context.Context, req ChatRequest) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewFailure(KindUnknown, fmt.Errorf("completer panic: %v", r))
		}
	}()
	return g.completer.Complete(ctx, req)
}

// toneLabel bounds metric label cardinality for free-text tones.
func toneLabel(t Tone) string {
	if t.Recognized() {
		return t.String()
	}
	return "other"
}
