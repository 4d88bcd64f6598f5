package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, countTokens(""))
	assert.Greater(t, countTokens("hello world"), 0)
	assert.Greater(t, countTokens(strings.Repeat("word ", 100)), countTokens("word"))
}

func TestWarmTokenizer(t *testing.T) {
	WarmTokenizer(context.Background())

	// counting after warm-up uses the same encoder (or the same fallback)
	first := countTokens("launch plan")
	WarmTokenizer(context.Background())
	assert.Equal(t, first, countTokens("launch plan"))
	assert.Greater(t, first, 0)
}

func TestTrimHistory(t *testing.T) {
	u := func(s string) core.Message { return core.Message{Role: core.RoleUser, Content: s} }
	a := func(s string) core.Message { return core.Message{Role: core.RoleAssistant, Content: s} }

	history := []core.Message{u("q1"), a("a1"), u("q2"), a("a2")}

	assert.Nil(t, trimHistory(history, 0))
	assert.Nil(t, trimHistory(nil, 100))
	assert.Equal(t, history, trimHistory(history, 10_000))

	// room for the last two turns only
	budget := messageTokens(history[2]) + messageTokens(history[3])
	assert.Equal(t, []core.Message{u("q2"), a("a2")}, trimHistory(history, budget))

	// room for the last three would start with an assistant turn; it is dropped
	budget = messageTokens(history[1]) + messageTokens(history[2]) + messageTokens(history[3])
	assert.Equal(t, []core.Message{u("q2"), a("a2")}, trimHistory(history, budget))

	// only the trailing assistant turn fits
	assert.Nil(t, trimHistory(history, messageTokens(history[3])))
}
