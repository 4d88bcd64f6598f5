package relay

import (
	"context"
	"fmt"

	"github.com/sandevgo/slackrelay/internal/core"
)

// Dispatcher sends composed prompts to the completion provider with fixed
// model options.
type Dispatcher struct {
	provider core.CompletionProvider
	opts     core.ChatOptions
}

func NewDispatcher(provider core.CompletionProvider, model, systemPrompt string) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		opts: core.ChatOptions{
			Model:        model,
			SystemPrompt: systemPrompt,
			Restart:      false,
		},
	}
}

// Dispatch returns the provider's first choice verbatim.
func (d *Dispatcher) Dispatch(ctx context.Context, conversationID, prompt string) (string, error) {
	completion, err := d.provider.Complete(ctx, conversationID, prompt, d.opts)
	if err != nil {
		return "", fmt.Errorf("completion for %s: %w", conversationID, err)
	}
	return completion.Choice, nil
}
