package telegram

import (
	"context"
	"fmt"
	"log"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"kinobot/frontend/internal/backend"
)

// topListSize is how many unwatched movies the /top command shows.
const topListSize = 5

// provisionUser asks the backend for the chat's identity and caches it.
// The backend upserts, so calling it for a known chat is harmless.
func (s *BotService) provisionUser(ctx context.Context, chatID int64) (uuid.UUID, error) {
	userID, err := s.backend.SaveUser(ctx, chatID)
	if err != nil {
		return uuid.Nil, err
	}
	s.sessions.Users.Set(chatID, userID)
	log.Printf("✅ cached backend identity %s for chat %d", userID, chatID)
	return userID, nil
}

// ensureUser resolves the chat's identity, provisioning it on first
// contact.
func (s *BotService) ensureUser(ctx context.Context, chatID int64) (uuid.UUID, error) {
	if userID, ok := s.sessions.Users.Get(chatID); ok {
		return userID, nil
	}
	log.Printf("ℹ️ no cached identity for chat %d, provisioning", chatID)
	return s.provisionUser(ctx, chatID)
}

// requireUser resolves the chat's identity without provisioning; flows
// that operate on a user's lists expect /start to have run first.
func (s *BotService) requireUser(chatID int64) (uuid.UUID, bool) {
	userID, ok := s.sessions.Users.Get(chatID)
	if !ok {
		s.reply(chatID, s.t("err_no_user"), nil)
	}
	return userID, ok
}

// handleStart provisions the identity and renders the main menu.
func (s *BotService) handleStart(ctx context.Context, chatID int64, returning bool) {
	greeting := s.t("greeting_new")
	if returning {
		greeting = s.t("greeting_return")
	}

	if _, err := s.provisionUser(ctx, chatID); err != nil {
		log.Printf("ERROR: provisioning user for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_create_user"), nil)
		return
	}

	s.reply(chatID, greeting, tgbotapi.NewRemoveKeyboard(false))
	s.reply(chatID, s.t("choose_action"), s.mainMenuKeyboard())
}

func (s *BotService) handleRandom(ctx context.Context, chatID int64) {
	userID, err := s.ensureUser(ctx, chatID)
	if err != nil {
		log.Printf("ERROR: provisioning user for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_create_user"), nil)
		return
	}

	movie, err := s.backend.RandomMovie(ctx)
	if err != nil {
		log.Printf("ERROR: random movie for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_random"), nil)
		return
	}

	s.sessions.Movies.Set(userID, movie.ID, movie)
	s.sendMovie(chatID, movie, s.formatShort(movie), s.searchMovieButtons(userID, movie.ID))
	s.reply(chatID, s.t("menu_below"), s.backToMenuKeyboard())
}

// handleSearchPrompt asks for a title. Identity is provisioned eagerly
// so the following query does not have to; a failure here only logs,
// the query attempt will retry it.
func (s *BotService) handleSearchPrompt(ctx context.Context, chatID int64) {
	if _, ok := s.sessions.Users.Get(chatID); !ok {
		if _, err := s.provisionUser(ctx, chatID); err != nil {
			log.Printf("ERROR: provisioning user for chat %d: %v", chatID, err)
		}
	}
	s.reply(chatID, s.t("prompt_search"), s.backToMenuKeyboard())
}

func (s *BotService) handleSearchQuery(ctx context.Context, chatID int64, query string) {
	userID, err := s.ensureUser(ctx, chatID)
	if err != nil {
		log.Printf("ERROR: provisioning user for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_create_user"), nil)
		return
	}

	movies, err := s.backend.Search(ctx, userID, query)
	if err != nil {
		log.Printf("ERROR: search %q for chat %d: %v", query, chatID, err)
		s.reply(chatID, s.t("err_search"), s.backToMenuKeyboard())
		return
	}
	if len(movies) == 0 {
		s.reply(chatID, s.t("search_empty"), s.backToMenuKeyboard())
		return
	}

	s.sessions.Results.Set(chatID, movies)
	s.showSearchPage(chatID, userID)
}

// showSearchPage renders the current page of cached results: each movie
// as its own card, then one navigation message. Prev/next are offered
// only when the move is valid.
func (s *BotService) showSearchPage(chatID int64, userID uuid.UUID) {
	movies, page, maxPage, ok := s.sessions.Results.Slice(chatID, s.pageSize)
	if !ok {
		return
	}

	for _, movie := range movies {
		s.sessions.Movies.Set(userID, movie.ID, movie)
		s.sendMovie(chatID, movie, s.formatShort(movie), s.searchMovieButtons(userID, movie.ID))
	}

	info := fmt.Sprintf(s.t("page_info"), page+1, maxPage+1)
	s.reply(chatID, info, s.navKeyboard(page, maxPage))
}

// handleTop shows the user's best unwatched movies, rated descending.
// Ties keep the backend order.
func (s *BotService) handleTop(ctx context.Context, chatID int64) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	items, err := s.backend.Unwatched(ctx, userID)
	if err != nil {
		log.Printf("ERROR: unwatched list for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_saved_list"), nil)
		return
	}
	if len(items) == 0 {
		s.reply(chatID, s.t("top_empty"), nil)
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Movie.VoteAverage > items[j].Movie.VoteAverage
	})
	if len(items) > topListSize {
		items = items[:topListSize]
	}

	s.sendMovieList(chatID, userID, items, s.savedMovieButtons)
	s.reply(chatID, s.t("menu_return"), s.backToMenuKeyboard())
}

func (s *BotService) handleStats(ctx context.Context, chatID int64) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	stats, err := s.backend.Stats(ctx, userID)
	if err != nil {
		log.Printf("ERROR: stats for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_stats"), nil)
		return
	}
	s.reply(chatID, fmt.Sprintf(s.t("stats_text"), stats.Watched, stats.Unwatched), s.backToMenuKeyboard())
}

// showSaved lists the unwatched (saved for later) movies.
func (s *BotService) showSaved(ctx context.Context, chatID int64) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	items, err := s.backend.Unwatched(ctx, userID)
	if err != nil {
		log.Printf("ERROR: unwatched list for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_saved_list"), nil)
		return
	}
	if len(items) == 0 {
		s.reply(chatID, s.t("saved_empty"), nil)
		return
	}

	s.sendMovieList(chatID, userID, items, s.savedMovieButtons)
	s.reply(chatID, s.t("saved_header"), s.backToMenuKeyboard())
}

// showWatched lists watched movies and offers the rating filter.
func (s *BotService) showWatched(ctx context.Context, chatID int64) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	items, err := s.backend.Watched(ctx, userID)
	if err != nil {
		log.Printf("ERROR: watched list for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_watched_list"), nil)
		return
	}
	if len(items) == 0 {
		s.reply(chatID, s.t("watched_empty"), nil)
		return
	}

	s.sendMovieList(chatID, userID, items, s.watchedMovieButtons)
	s.reply(chatID, s.t("can_filter"), s.watchedFilterButtons())
	s.reply(chatID, s.t("menu_return"), s.backToMenuKeyboard())
}

// showFilteredWatched lists watched movies at or above minRating. The
// threshold is forwarded to the backend verbatim, never re-filtered
// here. The interactive form keeps the user in the filtered view with a
// restore keyboard; the command form goes straight back to the menu.
func (s *BotService) showFilteredWatched(ctx context.Context, chatID int64, minRating float64, interactive bool) {
	userID, ok := s.requireUser(chatID)
	if !ok {
		return
	}

	items, err := s.backend.WatchedFiltered(ctx, userID, minRating)
	if err != nil {
		log.Printf("ERROR: filtered watched list for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("err_filter"), nil)
		return
	}
	if len(items) == 0 {
		empty := fmt.Sprintf(s.t("filter_empty"), formatRating(minRating))
		if interactive {
			s.reply(chatID, empty, s.backToMenuKeyboard())
		} else {
			s.reply(chatID, empty, nil)
		}
		return
	}

	s.sendMovieList(chatID, userID, items, s.watchedMovieButtons)
	if interactive {
		s.reply(chatID, s.t("restore_full_list"), s.filteredListKeyboard())
	} else {
		s.reply(chatID, s.t("menu_return"), s.backToMenuKeyboard())
	}
}

// handleRatingInput consumes the score typed while in the rating state.
// Invalid input re-prompts and keeps both the state and the pending
// target so the user can retry.
func (s *BotService) handleRatingInput(ctx context.Context, chatID int64, text string) {
	target, ok := s.sessions.Ratings.Get(chatID)
	if !ok {
		s.reply(chatID, s.t("rating_no_target"), nil)
		return
	}

	rating, ok := parseRating(text)
	if !ok {
		s.reply(chatID, s.t("invalid_rating"), s.backToMenuKeyboard())
		return
	}

	if err := s.backend.SetRating(ctx, target.UserID, target.MovieID, rating); err != nil {
		log.Printf("ERROR: set rating for chat %d: %v", chatID, err)
		s.reply(chatID, s.t("rating_failed"), nil)
		return
	}

	s.reply(chatID, fmt.Sprintf(s.t("rating_saved"), formatRating(rating)), nil)
	s.sessions.Movies.UpdateUserRating(target.UserID, target.MovieID, rating)

	if messageID, ok := s.sessions.Messages.Get(chatID); ok {
		if movie, ok := s.sessions.Movies.Get(target.UserID, target.MovieID); ok {
			s.editCaption(chatID, messageID, s.formatFull(movie), s.watchedMovieFullButtons(target.UserID, target.MovieID))
			s.reply(chatID, s.t("menu_return"), s.backToMenuKeyboard())
		}
	}

	s.sessions.Messages.Clear(chatID)
	s.sessions.Ratings.Clear(chatID)
	s.sessions.States.Clear(chatID)
}

// handleFilterInput consumes the threshold typed while in the filter
// state. Invalid input re-prompts and keeps the state.
func (s *BotService) handleFilterInput(ctx context.Context, chatID int64, text string) {
	minRating, ok := parseRating(text)
	if !ok {
		s.reply(chatID, s.t("invalid_filter"), s.backToMenuKeyboard())
		return
	}
	s.sessions.States.Clear(chatID)
	s.showFilteredWatched(ctx, chatID, minRating, true)
}

// sendMovieList renders list-envelope items, caching each record under
// its tmdb id so the card's buttons can find it later.
func (s *BotService) sendMovieList(chatID int64, userID uuid.UUID, items []backend.ListItem, buttons func(uuid.UUID, int) tgbotapi.InlineKeyboardMarkup) {
	for _, item := range items {
		s.sessions.Movies.Set(userID, item.TmdbID, item.Movie)
		s.sendMovie(chatID, item.Movie, s.formatShort(item.Movie), buttons(userID, item.TmdbID))
	}
}
