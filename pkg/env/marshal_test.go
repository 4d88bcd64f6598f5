package env

import (
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Workspace   string `env:"slack_workspace" envDefault:"secondstate"`
	Token       string `env:"SLACK_BOT_TOKEN,required,notEmpty"`
	Diagnostics bool   `env:"DIAGNOSTICS"`
	Budget      int    `env:"LLM_HISTORY_TOKENS"`
	Prompt      string `env:"SYSTEM_PROMPT"`
	NoTag       string
	hidden      string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	in := &sample{
		Token:       "xoxb-1",
		Diagnostics: true,
		Budget:      3000,
		Prompt:      "You are a helpful assistant inside Slack.",
		NoTag:       "skip",
		hidden:      "skip",
	}

	out, err := MarshalEnv(in)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"SLACK_BOT_TOKEN=xoxb-1",
		"DIAGNOSTICS=true",
		"LLM_HISTORY_TOKENS=3000",
		`SYSTEM_PROMPT="You are a helpful assistant inside Slack."`,
	}, "\n")+"\n", out)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful assistant inside Slack.", parsed["SYSTEM_PROMPT"])
	assert.NotContains(t, parsed, "slack_workspace")
}

func TestMarshalEnv_Empty(t *testing.T) {
	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalEnv_NotPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}
