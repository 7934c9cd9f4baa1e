// Warchest - relays guild gold and damage reports into a reviewed spreadsheet
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mbd888/warchest/internal/approval"
	"github.com/mbd888/warchest/internal/config"
	"github.com/mbd888/warchest/internal/discord"
	"github.com/mbd888/warchest/internal/ingest"
	"github.com/mbd888/warchest/internal/logging"
	"github.com/mbd888/warchest/internal/parser"
	"github.com/mbd888/warchest/internal/pending"
	"github.com/mbd888/warchest/internal/server"
	"github.com/mbd888/warchest/internal/sheet"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	logger := logging.New("info", "text")

	logger.Info("starting warchest",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("configuration loaded",
		"gold_channel", cfg.GoldChannelID,
		"damage_category", cfg.DamageCategoryID,
		"review_channel", cfg.ReviewChannelID,
		"approver_roles", len(cfg.ApproverRoleIDs),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("bot error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discord.Intents()

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer session.Close()

	var selfID string
	if session.State != nil && session.State.User != nil {
		selfID = session.State.User.ID
	}

	chat := discord.NewService(session)
	table := pending.NewTable(logger)
	p := parser.New(cfg.GoldChannelID, cfg.DamageCategoryID, selfID)
	ingestor := ingest.New(p, table, chat, cfg.ReviewChannelID, cfg.ApprovalEmoji, logger)
	gate := approval.New(table, sheet.NewClient(cfg.SheetWebhookURL), chat,
		cfg.ReviewChannelID, cfg.ApprovalEmoji, cfg.ApproverRoleIDs, logger)
	discord.NewBot(session, ingestor, gate, logger)

	srv := server.New(cfg.Port, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("bot running")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}
	return nil
}
