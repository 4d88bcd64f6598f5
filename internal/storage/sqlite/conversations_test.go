package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "nested", "conversations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM turns`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestConversations_AddAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewConversations(newTestDB(t))

	id := core.ConversationID("secondstate", "collaborative-chat")
	require.NoError(t, repo.AddTurn(ctx, id, core.Message{Role: core.RoleUser, Content: "hi"}))
	require.NoError(t, repo.AddTurn(ctx, id, core.Message{Role: core.RoleAssistant, Content: "hello"}))
	require.NoError(t, repo.AddTurn(ctx, "other-channel", core.Message{Role: core.RoleUser, Content: "elsewhere"}))

	turns, err := repo.GetTurns(ctx, id, 10)
	require.NoError(t, err)
	assert.Equal(t, []core.Message{
		{Role: core.RoleUser, Content: "hi"},
		{Role: core.RoleAssistant, Content: "hello"},
	}, turns)
}

func TestConversations_GetTurnsLimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	repo := NewConversations(newTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddTurn(ctx, "w-c", core.Message{Role: core.RoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	turns, err := repo.GetTurns(ctx, "w-c", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "m3", turns[0].Content)
	assert.Equal(t, "m4", turns[1].Content)
}

func TestConversations_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewConversations(newTestDB(t))

	require.NoError(t, repo.AddTurn(ctx, "w-a", core.Message{Role: core.RoleUser, Content: "a"}))
	require.NoError(t, repo.AddTurn(ctx, "w-b", core.Message{Role: core.RoleUser, Content: "b"}))

	require.NoError(t, repo.Reset(ctx, "w-a"))

	turns, err := repo.GetTurns(ctx, "w-a", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)

	turns, err = repo.GetTurns(ctx, "w-b", 10)
	require.NoError(t, err)
	assert.Len(t, turns, 1)
}
