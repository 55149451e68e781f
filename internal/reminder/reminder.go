// Package reminder periodically nudges every chat the bot knows about.
// The sweep is independent of the main dispatch loop and one failing
// recipient never stops the rest.
package reminder

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the slice of the Telegram client the sweep needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ChatLister enumerates the chats to notify.
type ChatLister interface {
	ChatIDs() []int64
}

type Service struct {
	bot      Sender
	chats    ChatLister
	message  string
	interval time.Duration
}

func New(bot Sender, chats ChatLister, message string, interval time.Duration) *Service {
	return &Service{bot: bot, chats: chats, message: message, interval: interval}
}

// Run sweeps at the configured interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep sends the reminder to every known chat, checking for
// cancellation between recipients. Send failures are logged and
// skipped.
func (s *Service) Sweep(ctx context.Context) {
	for _, chatID := range s.chats.ChatIDs() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, err := s.bot.Send(tgbotapi.NewMessage(chatID, s.message)); err != nil {
			log.Printf("❌ failed to send reminder to chat %d: %v", chatID, err)
		}
	}
}
