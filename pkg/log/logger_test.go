package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCtx_WithoutLogger(t *testing.T) {
	logger := FromCtx(context.Background())
	assert.NotNil(t, logger)
	// a disabled logger must not panic
	logger.Info().Msg("ignored")
}

func TestNewContextWithWriter(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := NewContextWithWriter(context.Background(), &buf, false)

	FromCtx(ctx).Info().Str("channel", "collaborative-chat").Msg("listening")
	FromCtx(ctx).Debug().Msg("hidden")
	flush()

	out := buf.String()
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "collaborative-chat")
	assert.NotContains(t, out, "hidden")
}
