package relay

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/slackrelay/internal/core"
)

// StatusReporter posts a line about the memory load into the channel the
// message came from. Install it with WithObserver to enable diagnostics.
type StatusReporter struct {
	responder *Responder
}

func NewStatusReporter(responder *Responder) *StatusReporter {
	return &StatusReporter{responder: responder}
}

func (s *StatusReporter) ContextLoaded(ctx context.Context, msg core.IncomingMessage, source, block string) {
	s.responder.Respond(ctx, msg.Workspace, msg.Channel, StatusLine(source, block))
}

// StatusLine describes the outcome of a memory load.
func StatusLine(source, block string) string {
	trimmed := strings.TrimSpace(block)
	if trimmed == "" {
		return fmt.Sprintf("⚠️ No launch plan memory found at %s, answering without context.", source)
	}
	return fmt.Sprintf("✅ Loaded launch plan memory from %s (%d characters).", source, utf8.RuneCountInString(trimmed))
}
