package provider

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// OpenAICompatible implements Provider for any endpoint that speaks the
// OpenAI Chat Completions API with SSE streaming: OpenAI itself, xAI/Grok,
// and custom self-hosted gateways.
type OpenAICompatible struct {
	name    string
	client  *openai.Client
	models  []string
	limiter *rate.Limiter
}

// NewOpenAICompatible creates a provider for an OpenAI-style endpoint.
// limiter may be nil to disable rate limiting.
func NewOpenAICompatible(name, endpoint, apiKey string, models []string, limiter *rate.Limiter) *OpenAICompatible {
	config := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		config.BaseURL = strings.TrimRight(endpoint, "/")
	}

	return &OpenAICompatible{
		name:    name,
		client:  openai.NewClientWithConfig(config),
		models:  models,
		limiter: limiter,
	}
}

// Name returns the provider identifier.
func (p *OpenAICompatible) Name() string {
	return p.name
}

// Models returns the enabled model identifiers.
func (p *OpenAICompatible) Models() []string {
	return p.models
}

// Stream sends messages and returns a channel that streams response chunks.
// The goroutine writes only into the returned channel and closes it on
// completion or error.
func (p *OpenAICompatible) Stream(ctx context.Context, model string, messages []Message) (<-chan StreamChunk, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: toOpenAIMessages(messages),
		Stream:   true,
	})
	if err != nil {
		return nil, err
	}

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				ch <- StreamChunk{Done: true}
				return
			}
			if err != nil {
				log.Debug().Err(err).Str("provider", p.name).Str("model", model).Msg("stream ended with error")
				ch <- StreamChunk{Err: err}
				return
			}

			if len(resp.Choices) > 0 {
				ch <- StreamChunk{Content: resp.Choices[0].Delta.Content}
			}
		}
	}()

	return ch, nil
}

// toOpenAIMessages converts provider-agnostic messages to the SDK format.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return result
}
