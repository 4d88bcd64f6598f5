package core

import "context"

// ContextLoader fetches the memory block. It never fails: absence is "".
type ContextLoader interface {
	Load(ctx context.Context) string
	// Source is the path or URL the loader reads, for status reporting.
	Source() string
}

type CompletionProvider interface {
	Complete(ctx context.Context, conversationID, prompt string, opts ChatOptions) (Completion, error)
}

type Sender interface {
	Send(ctx context.Context, workspace, channel, text string) error
}

// LoadObserver is notified after the memory block is loaded and before the
// prompt is dispatched.
type LoadObserver interface {
	ContextLoaded(ctx context.Context, msg IncomingMessage, source, block string)
}
