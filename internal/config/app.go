package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/slackrelay/pkg/log"
)

const (
	MemorySourceFile = "file"
	MemorySourceURL  = "url"

	DefaultMemoryURL    = "https://raw.githubusercontent.com/thebenewco/Slack-Chatgpt/main/memory/launch_plan.txt"
	DefaultSystemPrompt = "You are a helpful assistant inside Slack. Always use the Launch Plan context when relevant."
)

type AppConfig struct {
	RuntimePath string `env:"RELAY_RUNTIME_PATH" envDefault:".slackrelay"`

	// Slack addressing; lower-case keys kept for compatibility with existing deployments.
	Workspace string `env:"slack_workspace" envDefault:"secondstate"`
	Channel   string `env:"slack_channel" envDefault:"collaborative-chat"`

	// Memory sourcing
	MemorySource string `env:"MEMORY_SOURCE" envDefault:"file"`
	MemoryPath   string `env:"MEMORY_PATH" envDefault:"memory/launch_plan.txt"`
	MemoryURL    string `env:"MEMORY_URL"`
	MemoryLabel  string `env:"MEMORY_LABEL" envDefault:"Launch Plan"`

	// Post a status line about memory loading before every reply.
	Diagnostics bool `env:"DIAGNOSTICS" envDefault:"false"`

	SystemPrompt string `env:"SYSTEM_PROMPT"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

// ParseAppConfig reads AppConfig from the environment and validates it.
// Fields without an envDefault tag keep the values set here when unset.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{
		MemoryURL:    DefaultMemoryURL,
		SystemPrompt: DefaultSystemPrompt,
	}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c AppConfig) Validate() error {
	switch c.MemorySource {
	case MemorySourceFile, MemorySourceURL:
		return nil
	default:
		return &InvalidValueError{Key: "MEMORY_SOURCE", Value: c.MemorySource}
	}
}

func (c AppConfig) GetRuntimePath() string {
	return ResolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "conversations.db")
}

func (c AppConfig) GetMemorySource() string {
	return c.MemorySource
}

func (c AppConfig) GetMemoryPath() string {
	return c.MemoryPath
}

func (c AppConfig) GetMemoryURL() string {
	return c.MemoryURL
}
