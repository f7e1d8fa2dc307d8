package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicCompleter implements Completer against the Anthropic API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter constructs a completer. With an empty apiKey
// the SDK reads ANTHROPIC_API_KEY from the environment.
func NewAnthropicCompleter(model, apiKey string) (*AnthropicCompleter, error) {
	if model == "" {
		return nil, errors.New("anthropic completer: empty model")
	}
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &AnthropicCompleter{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// Complete sends one prompt and returns the text reply. The call is
// not retried and carries no local timeout; cancellation comes from
// the caller's context.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c == nil {
		return "", errors.New("anthropic completer: nil")
	}
	if maxTokens <= 0 {
		return "", errors.New("anthropic completer: invalid token budget")
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completer: %w", err)
	}

	var parts []string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", errors.New("anthropic completer: empty completion")
	}
	return text, nil
}
