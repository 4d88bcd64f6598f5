package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Conversations stores completion turns per conversation id.
type Conversations struct {
	db *sql.DB
}

func NewConversations(db *sql.DB) *Conversations {
	return &Conversations{db: db}
}

func (c *Conversations) AddTurn(ctx context.Context, conversationID string, msg core.Message) error {
	query := `INSERT INTO turns (conversation_id, role, content) VALUES (?, ?, ?)`
	if _, err := c.db.ExecContext(ctx, query, conversationID, msg.Role, msg.Content); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// GetTurns returns the last limit turns, oldest first.
func (c *Conversations) GetTurns(ctx context.Context, conversationID string, limit int) ([]core.Message, error) {
	query := `SELECT role, content FROM turns WHERE conversation_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := c.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> Oldest from the query; the model wants Oldest -> Newest.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Str("conversation", conversationID).Msg("loaded conversation turns")
	return turns, nil
}

func (c *Conversations) Reset(ctx context.Context, conversationID string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM turns WHERE conversation_id = ?`, conversationID); err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	return nil
}
