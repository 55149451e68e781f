package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"kinobot/frontend/internal/backend"
	"kinobot/frontend/internal/config"
	"kinobot/frontend/internal/genres"
	"kinobot/frontend/internal/localization"
	"kinobot/frontend/internal/reminder"
	"kinobot/frontend/internal/session"
	"kinobot/frontend/internal/telegram"
)

func main() {
	log.Println("Starting movie bot...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to start Telegram bot: %v", err)
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	loc, err := localization.NewLocalizer(cfg.LocalePath, cfg.Language)
	if err != nil {
		log.Fatalf("Failed to load message catalogs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := backend.NewClient(cfg.APIURL, nil)
	sessions := session.NewStore()
	genreIndex := genres.NewIndex()

	// Stale webhooks block long polling.
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Printf("ERROR: failed to delete webhook: %v", err)
	}

	// A missing genre catalog only degrades genre-name rendering.
	if catalog, err := api.Genres(ctx); err != nil {
		log.Printf("❌ failed to load genres: %v", err)
	} else {
		genreIndex.Set(catalog)
		log.Printf("✅ loaded %d genres", len(catalog))
	}

	svc := telegram.NewBotService(bot, api, sessions, genreIndex, loc, cfg.Language, cfg.PageSize)

	ready := tgbotapi.NewMessage(cfg.AdminChatID, loc.GetString(cfg.Language, "ready_notice"))
	if _, err := bot.Send(ready); err != nil {
		log.Printf("ERROR: failed to notify admin chat: %v", err)
	}

	rem := reminder.New(bot, sessions.Users, loc.GetString(cfg.Language, "reminder_message"), cfg.ReminderInterval)
	go rem.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	log.Println("✅ Bot is running...")
	svc.Run(ctx, updates)
	bot.StopReceivingUpdates()
}
