package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Desarso/hapticvision"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := hapticvision.LoadConfig()
	if err != nil {
		fatal(err, "invalid configuration")
	}

	logger, err := hapticvision.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fatal(err, "invalid logging configuration")
	}
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := hapticvision.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start")
	}

	if err := app.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func fatal(err error, msg string) {
	zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Fatal().Err(err).Msg(msg)
}
