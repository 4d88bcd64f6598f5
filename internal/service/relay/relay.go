package relay

import (
	"context"
	"strings"

	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Relay answers one chat message: load memory, compose, complete, reply.
// It holds no per-message state, so Handle is safe to call concurrently.
type Relay struct {
	loader     core.ContextLoader
	dispatcher *Dispatcher
	responder  *Responder
	label      string
	observer   core.LoadObserver
}

type Option func(*Relay)

// WithObserver registers an observer notified after every memory load.
func WithObserver(o core.LoadObserver) Option {
	return func(r *Relay) {
		r.observer = o
	}
}

// WithLabel sets the label used in the context header.
func WithLabel(label string) Option {
	return func(r *Relay) {
		r.label = label
	}
}

func New(
	loader core.ContextLoader,
	dispatcher *Dispatcher,
	responder *Responder,
	opts ...Option,
) *Relay {
	r := &Relay{
		loader:     loader,
		dispatcher: dispatcher,
		responder:  responder,
		label:      "Launch Plan",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle runs the pipeline for msg. Every path ends in exactly one reply,
// preceded by one status line when an observer posts one.
func (r *Relay) Handle(ctx context.Context, msg core.IncomingMessage) {
	conversationID := msg.ConversationID()
	logger := log.FromCtx(ctx).With().Str("conversation", conversationID).Logger()
	ctx = logger.WithContext(ctx)

	block := r.loader.Load(ctx)
	if strings.TrimSpace(block) == "" {
		logger.Warn().Str("source", r.loader.Source()).Msg("no memory context loaded")
	} else {
		logger.Debug().Int("bytes", len(block)).Msg("memory context loaded")
	}

	if r.observer != nil {
		r.observer.ContextLoaded(ctx, msg, r.loader.Source(), block)
	}

	prompt := Compose(r.label, block, msg.Text)

	reply, err := r.dispatcher.Dispatch(ctx, conversationID, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("completion failed")
		reply = core.FallbackReply
	}

	r.responder.Respond(ctx, msg.Workspace, msg.Channel, reply)
}
