package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Conversations gives a stateless Chatter per-conversation memory. Turns are
// stored only after a successful completion.
type Conversations struct {
	chatter     Chatter
	repo        core.ConversationRepository
	maxTokens   int
	maxMessages int
}

func NewConversations(chatter Chatter, repo core.ConversationRepository, maxTokens, maxMessages int) *Conversations {
	return &Conversations{
		chatter:     chatter,
		repo:        repo,
		maxTokens:   maxTokens,
		maxMessages: maxMessages,
	}
}

func (c *Conversations) Complete(ctx context.Context, conversationID, prompt string, opts core.ChatOptions) (core.Completion, error) {
	logger := log.FromCtx(ctx)

	if opts.Restart {
		if err := c.repo.Reset(ctx, conversationID); err != nil {
			return core.Completion{}, fmt.Errorf("failed to restart conversation: %w", err)
		}
	}

	history, err := c.repo.GetTurns(ctx, conversationID, c.maxMessages)
	if err != nil {
		return core.Completion{}, fmt.Errorf("failed to load conversation: %w", err)
	}

	userMsg := core.Message{Role: core.RoleUser, Content: prompt}

	messages := make([]core.Message, 0, len(history)+2)
	budget := c.maxTokens - messageTokens(userMsg)
	if opts.SystemPrompt != "" {
		sys := core.Message{Role: core.RoleSystem, Content: opts.SystemPrompt}
		budget -= messageTokens(sys)
		messages = append(messages, sys)
	}
	messages = append(messages, trimHistory(history, budget)...)
	messages = append(messages, userMsg)

	logger.Debug().
		Int("messages", len(messages)).
		Str("model", opts.Model).
		Msg("requesting completion")

	reply, err := c.chatter.Chat(ctx, opts.Model, messages)
	if err != nil {
		return core.Completion{}, err
	}
	if reply.Content == "" {
		return core.Completion{}, core.ErrEmptyChoice
	}

	if err := c.repo.AddTurn(ctx, conversationID, userMsg); err != nil {
		logger.Error().Err(err).Msg("failed to save user turn")
	} else if err := c.repo.AddTurn(ctx, conversationID, core.Message{Role: core.RoleAssistant, Content: reply.Content}); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant turn")
	}

	return core.Completion{Choice: reply.Content}, nil
}
