package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/app"
	"github.com/ykvlv/birthday-bot/internal/config"
	"github.com/ykvlv/birthday-bot/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "birthday-bot",
		Short: "Telegram bot that congratulates chats on birthdays and holidays",
		Long: `birthday-bot stores birthdays per Telegram chat and, once a day at the
chat's configured time, posts today's holidays and birthday greetings.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the bot (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		newHolidaysCmd(),
	)
	return root
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; cobra prints the error.
		return fmt.Errorf("config error: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("app init failed", zap.Error(err))
		return err
	}

	if err := application.Run(ctx); err != nil {
		log.Error("app run failed", zap.Error(err))
		return err
	}
	return nil
}
