package relay

import (
	"context"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Responder posts text back to a channel. Send failures are logged and
// dropped; the transport owns delivery guarantees.
type Responder struct {
	sender core.Sender
}

func NewResponder(sender core.Sender) *Responder {
	return &Responder{sender: sender}
}

func (r *Responder) Respond(ctx context.Context, workspace, channel, text string) {
	if err := r.sender.Send(ctx, workspace, channel, text); err != nil {
		log.FromCtx(ctx).Error().
			Err(err).
			Str("workspace", workspace).
			Str("channel", channel).
			Msg("failed to send slack message")
	}
}
