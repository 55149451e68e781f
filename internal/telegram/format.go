package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinobot/frontend/internal/backend"
)

const (
	posterBaseURL = "https://image.tmdb.org/t/p/w500"
	overviewLimit = 100
)

// formatRating prints a score without trailing zeros (8, 8.5).
func formatRating(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func movieYear(m backend.Movie) string {
	if t, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
		return strconv.Itoa(t.Year())
	}
	return "????"
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func (s *BotService) movieTitle(m backend.Movie) string {
	if m.Title != "" {
		return m.Title
	}
	if m.OriginalTitle != "" {
		return m.OriginalTitle
	}
	return s.t("unknown")
}

// formatShort is the one-card list view: title, year, rating, a
// trimmed overview and the user's own score when present.
func (s *BotService) formatShort(m backend.Movie) string {
	userRating := ""
	if m.UserRating != nil {
		userRating = fmt.Sprintf(s.t("movie_user_rating_short"), formatRating(*m.UserRating))
	}
	return fmt.Sprintf(s.t("movie_short"),
		s.movieTitle(m), movieYear(m), formatRating(m.VoteAverage), userRating,
		truncateRunes(m.Overview, overviewLimit))
}

// formatFull is the expanded view with genre names and the untrimmed
// overview. Genres whose name is not in the index are skipped.
func (s *BotService) formatFull(m backend.Movie) string {
	names := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := s.genres.Name(id); ok {
			names = append(names, name)
		}
	}
	genresText := s.t("unknown")
	if len(names) > 0 {
		genresText = strings.Join(names, ", ")
	}

	userRating := ""
	if m.UserRating != nil {
		userRating = fmt.Sprintf(s.t("movie_user_rating_full"), formatRating(*m.UserRating))
	}

	return fmt.Sprintf(s.t("movie_full"),
		s.movieTitle(m), movieYear(m), formatRating(m.VoteAverage), userRating,
		genresText, m.Overview)
}

// sendMovie renders one card: a photo with caption when the record has
// a poster path, a plain text message otherwise.
func (s *BotService) sendMovie(chatID int64, movie backend.Movie, caption string, markup tgbotapi.InlineKeyboardMarkup) {
	if movie.PosterPath != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(posterBaseURL+movie.PosterPath))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = markup
		s.send(photo)
		return
	}
	s.reply(chatID, caption, markup)
}
