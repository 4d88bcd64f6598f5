package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		context  string
		userText string
		expected string
	}{
		{
			name:     "empty context returns text verbatim",
			label:    "Launch Plan",
			context:  "",
			userText: "What's the status?",
			expected: "What's the status?",
		},
		{
			name:     "whitespace context returns text verbatim",
			label:    "Launch Plan",
			context:  " \n\t ",
			userText: "  padded  ",
			expected: "  padded  ",
		},
		{
			name:     "launch plan context",
			label:    "Launch Plan",
			context:  "Phase 1 launches Monday.",
			userText: "What's the status?",
			expected: "Context (Launch Plan):\nPhase 1 launches Monday.\n\nUser request:\nWhat's the status?",
		},
		{
			name:     "context is trimmed",
			label:    "Launch Plan",
			context:  "\n\nPhase 1 launches Monday.\n",
			userText: "When?",
			expected: "Context (Launch Plan):\nPhase 1 launches Monday.\n\nUser request:\nWhen?",
		},
		{
			name:     "no label uses plain header",
			label:    "",
			context:  "notes",
			userText: "hi",
			expected: "Context:\nnotes\n\nUser request:\nhi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.label, tt.context, tt.userText)
			assert.Equal(t, tt.expected, got)
			// deterministic
			assert.Equal(t, got, Compose(tt.label, tt.context, tt.userText))
		})
	}
}

func TestCompose_ContextBeforeRequest(t *testing.T) {
	inputs := []struct{ context, text string }{
		{"a", "b"},
		{"multi\nline\nplan", "multi\nline\nrequest"},
		{"  Ünïcode plan ✅ ", "¿qué pasa?"},
	}

	for _, in := range inputs {
		got := Compose("Launch Plan", in.context, in.text)
		ctxIdx := strings.Index(got, strings.TrimSpace(in.context))
		reqIdx := strings.LastIndex(got, in.text)
		assert.GreaterOrEqual(t, ctxIdx, 0)
		assert.Greater(t, reqIdx, ctxIdx)
		assert.True(t, strings.HasSuffix(got, "User request:\n"+in.text))
	}
}
