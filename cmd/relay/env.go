package main

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// loadEnv loads <runtime>/.env; values already in the environment win.
func loadEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", envFile).Msg(".env not found, using process environment")
			return nil
		}
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env")
	return nil
}
