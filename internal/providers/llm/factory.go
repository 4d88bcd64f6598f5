package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Chatter is a stateless chat-completion backend.
type Chatter interface {
	// Chat returns the first choice. An empty model selects the backend default.
	Chat(ctx context.Context, model string, history []core.Message) (core.Message, error)
}

// NewChatter creates the backend named by cfg.Provider.
func NewChatter(ctx context.Context, cfg *config.LLMConfig) (Chatter, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model), nil
	case config.ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model), nil
	case config.ProviderCustom:
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownProvider, cfg.Provider)
	}
}
