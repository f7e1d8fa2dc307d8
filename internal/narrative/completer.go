package narrative

import "context"

// Completer is the narrow text-completion boundary: one prompt and a
// token budget in, one string out. Any implementation (cloud LLM,
// local model, canned responder) satisfies the generator.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
