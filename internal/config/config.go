// Package config reads the bot settings from the environment. A .env
// file, when present, is loaded by main before Load runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BotToken    string
	AdminChatID int64
	APIURL      string

	PageSize         int
	ReminderInterval time.Duration
	LocalePath       string
	Language         string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load builds the configuration from the environment. The bot token,
// admin chat id and backend URL are required; everything else has a
// default.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	adminRaw := os.Getenv("ADMIN_CHAT_ID")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_CHAT_ID is not set")
	}
	adminChatID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_CHAT_ID %q is not a chat id: %w", adminRaw, err)
	}

	apiURL := os.Getenv("BACKEND_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL is not set")
	}

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "3"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be a positive integer")
	}

	interval, err := time.ParseDuration(getEnv("REMINDER_INTERVAL", "10h"))
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be a positive duration")
	}

	return &Config{
		BotToken:         token,
		AdminChatID:      adminChatID,
		APIURL:           apiURL,
		PageSize:         pageSize,
		ReminderInterval: interval,
		LocalePath:       getEnv("LOCALE_PATH", "internal/localization"),
		Language:         getEnv("BOT_LANGUAGE", "uk"),
	}, nil
}
