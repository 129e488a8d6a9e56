package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ad/telegram-classifieds-bot/internal/bot"
	"github.com/ad/telegram-classifieds-bot/internal/config"
	"github.com/ad/telegram-classifieds-bot/internal/domain"
	"github.com/ad/telegram-classifieds-bot/internal/locale"
	"github.com/ad/telegram-classifieds-bot/internal/logger"
	"github.com/ad/telegram-classifieds-bot/internal/storage"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logLevel := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logLevel)
	log.Info("Starting classifieds bot", "log_level", cfg.LogLevel, "locale", cfg.Locale)

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		log.Error("Failed to enable WAL mode", "error", err)
		os.Exit(1)
	}

	log.Info("Database opened", "path", cfg.DatabasePath)

	// Serialize all database access through the queue
	dbQueue := storage.NewDBQueue(db)
	defer dbQueue.Close()

	if err := storage.InitSchema(dbQueue); err != nil {
		log.Error("Failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	if err := storage.RunMigrations(dbQueue); err != nil {
		log.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database schema ready")

	adRepo := storage.NewAdRepository(dbQueue)
	sessionStorage := storage.NewSessionStorage(dbQueue, log)

	// Drop wizard sessions abandoned before the last restart
	if err := sessionStorage.CleanupStale(context.Background()); err != nil {
		log.Error("Failed to cleanup stale wizard sessions", "error", err)
	}

	localizer, err := locale.NewLocalizer(locale.NewLocale(cfg.Locale))
	if err != nil {
		log.Error("Failed to create localizer", "error", err)
		os.Exit(1)
	}

	adService := domain.NewAdService(adRepo, cfg.AdminUserIDs, log)
	log.Info("Ad service created", "admins", len(cfg.AdminUserIDs))

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Created after the bot below; the default handler needs it for
	// photo uploads, which carry no text and bypass the text handlers.
	var handler *bot.BotHandler

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if handler != nil && update.Message != nil && len(update.Message.Photo) > 0 {
				handler.HandlePhotoMessage(ctx, b, update)
			}
		}),
	}

	b, err := tgbot.New(cfg.TelegramToken, opts...)
	if err != nil {
		log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	log.Info("Telegram bot created")

	wizard := bot.NewAdCreationFSM(sessionStorage, b, adService, localizer, log)
	handler = bot.NewBotHandler(b, adService, wizard, cfg, localizer, log)

	// Register command handlers
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, handler.HandleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/add", tgbot.MatchTypeExact, handler.HandleAdd)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/cancel", tgbot.MatchTypeExact, handler.HandleCancel)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/skip", tgbot.MatchTypeExact, handler.HandleSkip)

	// Register callback query handler
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, handler.HandleCallback)

	// Register message handler for the wizard
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "", tgbot.MatchTypePrefix, handler.HandleMessage)

	log.Info("Handlers registered")

	go func() {
		log.Info("Starting bot polling")
		b.Start(ctx)
	}()

	log.Info("Bot is running. Press Ctrl+C to stop.")

	<-ctx.Done()

	log.Info("Shutdown signal received, stopping bot...")
	log.Info("Bot stopped")
}
