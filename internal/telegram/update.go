package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinobot/frontend/internal/session"
)

// handleMessage interprets one free-text message: fixed keyboard labels
// first, then commands, then whatever input mode the chat is in.
// Commands always win over an in-progress text capture, so a user never
// has to cancel a flow to issue one.
func (s *BotService) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := msg.Text

	switch text {
	case s.t("btn_back_menu"):
		s.returnToMenu(ctx, chatID)
		return
	case s.t("btn_prev_page"):
		s.turnPage(chatID, -1)
		return
	case s.t("btn_next_page"):
		s.turnPage(chatID, +1)
		return
	case s.t("btn_show_all_watched"):
		s.showWatched(ctx, chatID)
		return
	}

	if s.handleCommand(ctx, chatID, text) {
		return
	}

	switch s.sessions.States.Get(chatID) {
	case session.StateSearch:
		s.sessions.States.Clear(chatID)
		s.handleSearchQuery(ctx, chatID, text)
	case session.StateRating:
		s.handleRatingInput(ctx, chatID, text)
	case session.StateFilter:
		s.handleFilterInput(ctx, chatID, text)
	}
}

// handleCommand runs a top-level command and reports whether the text
// was one.
func (s *BotService) handleCommand(ctx context.Context, chatID int64, text string) bool {
	switch {
	case text == "/start":
		log.Printf("[%d] used /start command", chatID)
		s.handleStart(ctx, chatID, false)
	case text == "/random":
		log.Printf("[%d] used /random command", chatID)
		s.handleRandom(ctx, chatID)
	case text == "/search":
		log.Printf("[%d] used /search command", chatID)
		s.sessions.States.Set(chatID, session.StateSearch)
		s.handleSearchPrompt(ctx, chatID)
	case text == "/top":
		log.Printf("[%d] used /top command", chatID)
		s.handleTop(ctx, chatID)
	case text == "/stats":
		log.Printf("[%d] used /stats command", chatID)
		s.handleStats(ctx, chatID)
	case strings.HasPrefix(text, "/filter"):
		parts := strings.Fields(text)
		if len(parts) == 2 {
			if minRating, ok := parseRating(parts[1]); ok {
				log.Printf("[%d] used /filter %s", chatID, parts[1])
				s.showFilteredWatched(ctx, chatID, minRating, false)
				return true
			}
		}
		s.reply(chatID, s.t("filter_usage"), nil)
	default:
		return false
	}
	return true
}

// returnToMenu is the escape hatch out of any state: input mode, search
// results, pending rating and the chat user's cached movies are all
// dropped before the menu is rendered again.
func (s *BotService) returnToMenu(ctx context.Context, chatID int64) {
	s.sessions.States.Clear(chatID)
	s.sessions.Results.Clear(chatID)
	s.sessions.Ratings.Clear(chatID)
	s.sessions.Messages.Clear(chatID)
	if userID, ok := s.sessions.Users.Get(chatID); ok {
		s.sessions.Movies.ClearUser(userID)
	}
	s.handleStart(ctx, chatID, true)
}

// turnPage moves through cached search results. The nav keyboard only
// offers a direction when it is valid, so delta stays in range; SetPage
// clamps anyway.
func (s *BotService) turnPage(chatID int64, delta int) {
	userID, ok := s.sessions.Users.Get(chatID)
	if !ok {
		return
	}
	_, page, ok := s.sessions.Results.Get(chatID)
	if !ok {
		return
	}
	s.sessions.Results.SetPage(chatID, page+delta, s.pageSize)
	s.showSearchPage(chatID, userID)
}

// parseRating accepts a decimal score with either comma or dot
// separator, bounded to the 1..10 rating scale.
func parseRating(text string) (float64, bool) {
	normalized := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || value < 1 || value > 10 {
		return 0, false
	}
	return value, true
}
