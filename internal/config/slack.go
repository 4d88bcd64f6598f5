package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/slackrelay/pkg/log"
)

type SlackConfig struct {
	BotToken string `env:"SLACK_BOT_TOKEN,required,notEmpty"`
	AppToken string `env:"SLACK_APP_TOKEN,required,notEmpty"`
}

func NewSlackConfig(ctx context.Context) *SlackConfig {
	c := &SlackConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Slack config")
	}
	return c
}
