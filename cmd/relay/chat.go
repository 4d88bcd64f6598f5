package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/providers/llm"
	"github.com/sandevgo/slackrelay/internal/providers/memory"
	"github.com/sandevgo/slackrelay/internal/storage/sqlite"
	"github.com/sandevgo/slackrelay/internal/transport/console"
	"github.com/sandevgo/slackrelay/pkg/log"
	"github.com/sandevgo/slackrelay/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Talk to the relay from the terminal",
	Long:         `Runs the same pipeline as 'start' but reads messages from stdin and prints replies, no Slack connection needed.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := loadEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		llmCfg := config.NewLLMConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		cleanup := srv.NewCleanup(db.Close)

		chatter, err := llm.NewChatter(ctx, llmCfg)
		if err != nil {
			return err
		}
		llm.WarmTokenizer(ctx)
		provider := llm.NewConversations(chatter, sqlite.NewConversations(db), llmCfg.HistoryTokens, llmCfg.HistoryMessages)

		loader, err := memory.NewLoader(appCfg)
		if err != nil {
			return err
		}

		term, err := console.NewConsole(appCfg.GetRuntimePath(), appCfg.Workspace)
		if err != nil {
			return err
		}
		rl := newRelay(appCfg, llmCfg, loader, provider, term)
		term.Handle(rl.Handle)

		services := []srv.Service{cleanup, term}

		// The console blocks until exit, so it runs in the foreground.
		runErr := term.Start(ctx)
		if runErr != nil {
			logger.Error().Err(runErr).Msg("console stopped")
		}

		stop()
		srv.ShutdownServices(ctx, services)
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
