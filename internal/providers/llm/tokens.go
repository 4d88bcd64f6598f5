package llm

import (
	"context"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// perMessageOverhead approximates the role/separator tokens the chat format
// adds around every message.
const perMessageOverhead = 4

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// WarmTokenizer loads the cl100k encoding at startup so the first message
// does not wait on its download. On failure token counts fall back to an
// estimate.
func WarmTokenizer(ctx context.Context) {
	if _, err := getTokenizer(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("tokenizer unavailable, estimating history size")
		return
	}
	log.FromCtx(ctx).Debug().Msg("tokenizer loaded")
}

// countTokens uses cl100k_base, falling back to ~4 bytes per token when the
// encoding cannot be loaded (it is fetched on first use).
func countTokens(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return (len(text) + 3) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

func messageTokens(m core.Message) int {
	return countTokens(m.Content) + perMessageOverhead
}

// trimHistory keeps the newest turns that fit into budget tokens. The result
// never starts with an assistant turn, so the model does not see a reply
// without its question.
func trimHistory(history []core.Message, budget int) []core.Message {
	if budget <= 0 || len(history) == 0 {
		return nil
	}

	used := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		n := messageTokens(history[i])
		if used+n > budget {
			break
		}
		used += n
		start = i
	}

	for start < len(history) && history[start].Role == core.RoleAssistant {
		start++
	}
	if start == len(history) {
		return nil
	}
	return history[start:]
}
