package core

import "context"

// ConversationRepository stores provider-side turns keyed by conversation id.
type ConversationRepository interface {
	AddTurn(ctx context.Context, conversationID string, msg Message) error
	GetTurns(ctx context.Context, conversationID string, limit int) ([]Message, error)
	Reset(ctx context.Context, conversationID string) error
}
