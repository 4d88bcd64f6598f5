package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/providers/memory"
	"github.com/sandevgo/slackrelay/internal/service/relay"
	"github.com/sandevgo/slackrelay/internal/service/ui"
	"github.com/spf13/cobra"
)

var checkMessage string

var checkCmd = &cobra.Command{
	Use:          "check",
	Short:        "Load the memory source once and show the prompt it produces",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := loadEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg, err := config.ParseAppConfig()
		if err != nil {
			return err
		}

		loader, err := memory.NewLoader(appCfg)
		if err != nil {
			return err
		}

		block := loader.Load(ctx)
		line := relay.StatusLine(loader.Source(), block)

		out := cmd.OutOrStdout()
		if strings.TrimSpace(block) == "" {
			fmt.Fprintln(out, ui.WarnStyle.Render(line))
		} else {
			fmt.Fprintln(out, ui.OKStyle.Render(line))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.TitleStyle.Render("PROMPT"))
		fmt.Fprintln(out, relay.Compose(appCfg.MemoryLabel, block, checkMessage))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkMessage, "message", "m", "What's the status?", "sample user message")
	rootCmd.AddCommand(checkCmd)
}
