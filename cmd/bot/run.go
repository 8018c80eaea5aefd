package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"ctabot/internal/adapters/discord"
	"ctabot/internal/application"
	"ctabot/internal/config"
	"ctabot/internal/infrastructure/i18n"
	logpkg "ctabot/internal/infrastructure/log"
)

func runBot(_ *cli.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}
	logger, err := logpkg.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	store, err := application.NewAlertStore(ctx, repo)
	if err != nil {
		logger.Error("cannot load alerts", zap.Error(err))
		return fmt.Errorf("load alerts: %w", err)
	}
	logger.Info("alerts loaded", zap.String("backend", cfg.StoreBackend), zap.Int("count", store.Len()))

	tr := i18n.NewTranslator(cfg.Locale, logger.Named("i18n"))
	bot, err := discord.NewBot(ctx, cfg, store, tr, logger)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}
