// Package generate sends assembled request bundles to the remote drafting
// model and parses its semi-structured reply into a document body, an
// extracted client name and a short summary.
package generate

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"docugen/internal/assemble"
	"docugen/internal/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// DefaultTemperature keeps drafting near-deterministic.
const DefaultTemperature float32 = 0.3

// Result is the parsed outcome of one successful generation. Markdown
// never contains the metadata block or surrounding code fences.
type Result struct {
	Markdown   string
	ClientName string
	Summary    string
}

// chatCompleter is the slice of the OpenAI client the gateway uses; tests
// substitute a scripted implementation.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Gateway performs the remote drafting call. One in-flight request per
// invocation; cancellation and timeouts are the transport's concern.
type Gateway struct {
	client      chatCompleter
	model       string
	temperature float32
	log         zerolog.Logger
}

// NewGateway creates a gateway backed by the OpenAI API.
func NewGateway(apiKey, model string, temperature float32) (*Gateway, error) {
	if apiKey == "" {
		return nil, NewGenerationError("NewGateway", ErrMissingAPIKey, "set OPENAI_API_KEY")
	}
	return NewGatewayWithClient(openai.NewClient(apiKey), model, temperature), nil
}

// NewGatewayWithClient creates a gateway with an explicit client.
func NewGatewayWithClient(client chatCompleter, model string, temperature float32) *Gateway {
	if model == "" {
		model = DefaultModel
	}
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	return &Gateway{
		client:      client,
		model:       model,
		temperature: temperature,
		log:         logger.WithComponent("generate"),
	}
}

// Generate sends the bundle as a single combined instruction and parses
// the reply. Any transport or remote failure surfaces as a
// *GenerationError; there is no partial-result recovery.
func (g *Gateway) Generate(ctx context.Context, bundle assemble.Bundle) (Result, error) {
	const op = "Generate"

	g.log.Debug().
		Str("model", g.model).
		Str("invoice_number", bundle.InvoiceNumber).
		Int("prompt_length", len(bundle.User)).
		Msg("Sending generation request")

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: bundle.System},
			{Role: openai.ChatMessageRoleUser, Content: bundle.User},
		},
	})
	if err != nil {
		g.log.Error().Err(err).Msg("Generation request failed")
		return Result{}, NewGenerationError(op, err, "")
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Result{}, NewGenerationError(op, ErrEmptyResponse, "")
	}

	result := parseResponse(resp.Choices[0].Message.Content, bundle.SelectedClientName)

	g.log.Info().
		Str("client", result.ClientName).
		Str("summary", result.Summary).
		Int("body_length", len(result.Markdown)).
		Msg("Generation succeeded")

	return result, nil
}
