// Package telegram handles the integration with the Telegram Bot API.
// It receives updates, routes them through the per-chat conversation
// state machine and callback router, calls the movie backend and
// renders replies.
package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinobot/frontend/internal/backend"
	"kinobot/frontend/internal/genres"
	"kinobot/frontend/internal/localization"
	"kinobot/frontend/internal/session"
)

// Transport is the slice of the Telegram client the handlers use.
type Transport interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotService routes Telegram updates to the movie flows.
type BotService struct {
	bot      Transport
	backend  backend.API
	sessions *session.Store
	genres   *genres.Index
	loc      *localization.Localizer
	lang     string
	pageSize int
}

// NewBotService wires the bot together. pageSize is the number of
// movies rendered per search page.
func NewBotService(bot Transport, api backend.API, sessions *session.Store, index *genres.Index, loc *localization.Localizer, lang string, pageSize int) *BotService {
	return &BotService{
		bot:      bot,
		backend:  api,
		sessions: sessions,
		genres:   index,
		loc:      loc,
		lang:     lang,
		pageSize: pageSize,
	}
}

// Run consumes the updates channel until it closes or ctx is done.
// Each update is handled on its own goroutine; updates from different
// chats may overlap, two rapid updates from the same chat race
// last-write-wins on that chat's session entries.
func (s *BotService) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go s.handleUpdate(ctx, update)
		}
	}
}

func (s *BotService) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		s.handleMessage(ctx, update.Message)
	}
}

// t resolves a message key in the configured language.
func (s *BotService) t(key string) string {
	return s.loc.GetString(s.lang, key)
}

// send delivers a message best-effort; transport failures are logged
// and the flow continues.
func (s *BotService) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := s.bot.Send(c)
	if err != nil {
		log.Printf("ERROR: failed to send Telegram message: %v", err)
		return tgbotapi.Message{}, false
	}
	return msg, true
}

// reply sends an HTML text message with an optional reply markup.
func (s *BotService) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	s.send(msg)
}
