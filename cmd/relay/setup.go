package main

import (
	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/service/installer"
	"github.com/sandevgo/slackrelay/pkg/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:          "setup",
	Short:        "Create the runtime .env interactively",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		runtimePath := config.GetRuntimePath()
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Msgf("configuration written to %s/.env", runtimePath)
		log.FromCtx(ctx).Info().Msg("Setup complete! You can now run 'relay start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
