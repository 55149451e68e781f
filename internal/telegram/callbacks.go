package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"kinobot/frontend/internal/session"
)

// callbackContext carries the message a callback originated from, for
// in-place edits and deletions.
type callbackContext struct {
	chatID    int64
	messageID int
}

// movieAction is one identity-carrying route: a payload prefix and its
// handler. The handler returns the text to acknowledge the tap with
// ("" for a silent ack).
type movieAction struct {
	prefix string
	handle func(ctx context.Context, c callbackContext, userID uuid.UUID, movieID int) string
}

// movieActions is evaluated in order, first match wins. Prefixes are
// mutually exclusive because ParseAction demands an exact first-field
// match.
func (s *BotService) movieActions() []movieAction {
	return []movieAction{
		{"movie_details", s.showDetails},
		{"movie_set_watched", s.markWatchedFromSaved},
		{"movie_delete", s.deleteMovie},
		{"movie_rate", s.startRating},
		{"movie_save", s.saveMovie},
		{"movie_collapse", s.collapseToSearch},
		{"set_watched", s.markWatchedFromSearch},
		{"mds", s.showDetailsFromSaved},
		{"mcs", s.collapseToSaved},
		{"mdw", s.showDetailsFromWatched},
		{"mcw", s.collapseToWatched},
	}
}

// handleCallback dispatches a button tap and acknowledges it exactly
// once; unmatched payloads get a plain no-op acknowledgement.
func (s *BotService) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		s.ack(cb.ID, s.t("err_generic"))
		return
	}
	s.ack(cb.ID, s.dispatchCallback(ctx, cb))
}

func (s *BotService) ack(callbackID, text string) {
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("ERROR: failed to answer callback: %v", err)
	}
}

func (s *BotService) dispatchCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) string {
	c := callbackContext{chatID: cb.Message.Chat.ID, messageID: cb.Message.MessageID}
	data := cb.Data

	switch data {
	case "search_by_title":
		log.Printf("[%d] used %s", c.chatID, data)
		s.sessions.States.Set(c.chatID, session.StateSearch)
		s.handleSearchPrompt(ctx, c.chatID)
		return ""
	case "saved_movies":
		log.Printf("[%d] used %s", c.chatID, data)
		s.showSaved(ctx, c.chatID)
		return ""
	case "search_by_genre":
		log.Printf("[%d] used %s", c.chatID, data)
		s.showGenreMenu(ctx, c.chatID)
		return ""
	case "watched_filter":
		s.sessions.States.Set(c.chatID, session.StateFilter)
		s.reply(c.chatID, s.t("prompt_min_rating"), s.backToMenuKeyboard())
		return ""
	case "watched_movies":
		log.Printf("[%d] used %s", c.chatID, data)
		s.showWatched(ctx, c.chatID)
		return ""
	case "search_prev":
		s.turnPage(c.chatID, -1)
		return ""
	case "search_next":
		s.turnPage(c.chatID, +1)
		return ""
	case "back_to_menu":
		s.returnToMenu(ctx, c.chatID)
		return ""
	}

	if rest, ok := strings.CutPrefix(data, "search_genre:"); ok {
		if genreID, err := strconv.Atoi(rest); err == nil {
			s.searchByGenre(ctx, c.chatID, genreID)
			return ""
		}
	}

	for _, action := range s.movieActions() {
		if userID, movieID, ok := ParseAction(data, action.prefix); ok {
			return action.handle(ctx, c, userID, movieID)
		}
	}
	return ""
}

// showGenreMenu renders the backend genre catalog as inline buttons,
// two per row.
func (s *BotService) showGenreMenu(ctx context.Context, chatID int64) {
	if _, ok := s.requireUser(chatID); !ok {
		return
	}

	catalog, err := s.backend.Genres(ctx)
	if err != nil {
		log.Printf("ERROR: genre catalog for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_genres"), nil)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, genre := range catalog {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(genre.Name, "search_genre:"+strconv.Itoa(genre.ID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	s.reply(chatID, s.t("choose_genre"), tgbotapi.NewInlineKeyboardMarkup(rows...))
	s.reply(chatID, s.t("menu_back_hint"), s.backToMenuKeyboard())
}

func (s *BotService) searchByGenre(ctx context.Context, chatID int64, genreID int) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	movies, err := s.backend.SearchByGenre(ctx, userID, genreID)
	if err != nil {
		log.Printf("ERROR: genre search %d for chat %d: %v", genreID, chatID, err)
		s.reply(chatID, s.t("err_genre_search"), nil)
		return
	}
	if len(movies) == 0 {
		s.reply(chatID, s.t("genre_empty"), nil)
		return
	}

	s.sessions.Results.Set(chatID, movies)
	s.showSearchPage(chatID, userID)
}

// showDetails expands a fresh-search card into the full view. The
// button set depends on whether the record is already watched.
func (s *BotService) showDetails(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}

	markup := s.fullInfoMovieButtons(userID, movieID)
	if movie.Watched {
		markup = s.watchedMovieFullButtons(userID, movieID)
	}
	s.editCaption(c.chatID, c.messageID, s.formatFull(movie), markup)
	return ""
}

// markWatchedFromSaved moves a saved-list item to the watched list and
// removes its card.
func (s *BotService) markWatchedFromSaved(ctx context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		return s.t("cache_miss")
	}

	if err := s.backend.AddWatched(ctx, userID, movie); err != nil {
		log.Printf("ERROR: add-watched for chat %d: %v", c.chatID, err)
		return s.t("watched_failed")
	}

	s.deleteMessage(c.chatID, c.messageID)
	s.reply(c.chatID, s.t("watched_moved"), nil)
	return ""
}

func (s *BotService) deleteMovie(ctx context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	if err := s.backend.DeleteMovie(ctx, userID, movieID); err != nil {
		log.Printf("ERROR: delete movie %d for chat %d: %v", movieID, c.chatID, err)
		return s.t("delete_failed")
	}

	s.deleteMessage(c.chatID, c.messageID)
	s.reply(c.chatID, s.t("deleted_ok"), nil)
	return ""
}

// startRating enters the rating input mode, remembering which movie is
// being rated and which card to live-edit afterwards.
func (s *BotService) startRating(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	s.reply(c.chatID, s.t("prompt_rating"), s.backToMenuKeyboard())
	s.sessions.States.Set(c.chatID, session.StateRating)
	s.sessions.Messages.Set(c.chatID, c.messageID)
	s.sessions.Ratings.Set(c.chatID, session.RatingTarget{UserID: userID, MovieID: movieID})
	return ""
}

func (s *BotService) saveMovie(ctx context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}

	if err := s.backend.SaveMovie(ctx, userID, movie); err != nil {
		log.Printf("ERROR: save movie %d for chat %d: %v", movieID, c.chatID, err)
		s.reply(c.chatID, s.t("save_failed"), nil)
		return ""
	}
	s.reply(c.chatID, s.t("saved_ok"), nil)
	return ""
}

func (s *BotService) markWatchedFromSearch(ctx context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}

	if err := s.backend.AddWatched(ctx, userID, movie); err != nil {
		log.Printf("ERROR: add-watched for chat %d: %v", c.chatID, err)
		s.reply(c.chatID, s.t("watched_failed"), nil)
		return ""
	}
	s.reply(c.chatID, s.t("watched_added"), nil)
	return ""
}

func (s *BotService) collapseToSearch(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	return s.collapse(c, userID, movieID, s.searchMovieButtons(userID, movieID))
}

func (s *BotService) showDetailsFromSaved(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}
	s.editCaption(c.chatID, c.messageID, s.formatFull(movie), s.savedMovieFullButtons(userID, movieID))
	return ""
}

func (s *BotService) collapseToSaved(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	return s.collapse(c, userID, movieID, s.savedMovieButtons(userID, movieID))
}

func (s *BotService) showDetailsFromWatched(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}
	s.editCaption(c.chatID, c.messageID, s.formatFull(movie), s.watchedMovieFullButtons(userID, movieID))
	return ""
}

func (s *BotService) collapseToWatched(_ context.Context, c callbackContext, userID uuid.UUID, movieID int) string {
	return s.collapse(c, userID, movieID, s.watchedMovieButtons(userID, movieID))
}

// collapse shrinks a full card back to the short view with the button
// set of its origin list.
func (s *BotService) collapse(c callbackContext, userID uuid.UUID, movieID int, markup tgbotapi.InlineKeyboardMarkup) string {
	movie, ok := s.sessions.Movies.Get(userID, movieID)
	if !ok {
		s.reply(c.chatID, s.t("cache_miss"), nil)
		return ""
	}
	s.editCaption(c.chatID, c.messageID, s.formatShort(movie), markup)
	return ""
}

func (s *BotService) editCaption(chatID int64, messageID int, caption string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &markup
	s.send(edit)
}

func (s *BotService) deleteMessage(chatID int64, messageID int) {
	if _, err := s.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("ERROR: failed to delete message %d in chat %d: %v", messageID, chatID, err)
	}
}
