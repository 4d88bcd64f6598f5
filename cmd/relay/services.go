package main

import (
	"context"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/internal/providers/llm"
	"github.com/sandevgo/slackrelay/internal/providers/memory"
	"github.com/sandevgo/slackrelay/internal/service/relay"
	"github.com/sandevgo/slackrelay/internal/storage/sqlite"
	"github.com/sandevgo/slackrelay/internal/transport/slack"
	"github.com/sandevgo/slackrelay/pkg/log"
	"github.com/sandevgo/slackrelay/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := loadEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to load env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	slackCfg := config.NewSlackConfig(ctx)

	logger.Debug().
		Str("workspace", appCfg.Workspace).
		Str("channel", appCfg.Channel).
		Str("memory_source", appCfg.MemorySource).
		Bool("diagnostics", appCfg.Diagnostics).
		Msg("configuration loaded")

	// 2. Conversation storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Completion provider
	chatter, err := llm.NewChatter(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	llm.WarmTokenizer(ctx)
	provider := llm.NewConversations(chatter, sqlite.NewConversations(db), llmCfg.HistoryTokens, llmCfg.HistoryMessages)

	// 4. Memory
	loader, err := memory.NewLoader(appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize memory loader")
	}

	// 5. Slack transport + pipeline
	bot := slack.NewBot(slackCfg)
	rl := newRelay(appCfg, llmCfg, loader, provider, bot)
	bot.Handle(appCfg.Workspace, appCfg.Channel, rl.Handle)
	services = append(services, bot)

	return services
}

func newRelay(
	appCfg *config.AppConfig,
	llmCfg *config.LLMConfig,
	loader core.ContextLoader,
	provider core.CompletionProvider,
	sender core.Sender,
) *relay.Relay {
	responder := relay.NewResponder(sender)
	opts := []relay.Option{relay.WithLabel(appCfg.MemoryLabel)}
	if appCfg.Diagnostics {
		opts = append(opts, relay.WithObserver(relay.NewStatusReporter(responder)))
	}

	return relay.New(
		loader,
		relay.NewDispatcher(provider, llmCfg.Model, appCfg.SystemPrompt),
		responder,
		opts...,
	)
}
