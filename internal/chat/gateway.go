package chat

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// Generator produces a reply for an assembled prompt. Implementations make
// exactly one attempt per call; retry policy, if any, belongs to the caller.
type Generator interface {
	Generate(ctx context.Context, prompt string) (reply string, elapsed time.Duration, err error)
}

// AnthropicGateway is the production Generator. It sends the whole prompt as
// a single user message and forwards provider errors verbatim; it never
// interprets their content.
type AnthropicGateway struct {
	client          anthropic.Client
	model           anthropic.Model
	maxOutputTokens int64
}

func NewAnthropicGateway(client anthropic.Client, model anthropic.Model, maxOutputTokens int64) AnthropicGateway {
	return AnthropicGateway{
		client:          client,
		model:           model,
		maxOutputTokens: maxOutputTokens,
	}
}

func (g AnthropicGateway) Generate(ctx context.Context, prompt string) (string, time.Duration, error) {
	start := time.Now()
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxOutputTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, err
	}
	return extractReplyText(message), elapsed, nil
}

// extractReplyText concatenates the text blocks of a response. If the
// response carries no text at all, it falls back to the JSON encoding of the
// whole message so a representable result is never silently dropped.
func extractReplyText(message *anthropic.Message) string {
	var b strings.Builder
	for _, contentBlock := range message.Content {
		if contentBlock.Type == "text" {
			b.WriteString(contentBlock.Text)
		}
	}
	if b.Len() > 0 {
		return b.String()
	}

	raw, err := json.Marshal(message)
	if err != nil {
		log.Printf("error while marshalling textless message for fallback: %v", err)
		return message.RawJSON()
	}
	return string(raw)
}
