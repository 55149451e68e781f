package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

func actionData(prefix string, userID uuid.UUID, movieID int) string {
	return prefix + ":" + userID.String() + ":" + strconv.Itoa(movieID)
}

// mainMenuKeyboard is the four-button inline menu rendered by /start.
func (s *BotService) mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_search_by_title"), "search_by_title"),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_search_by_genre"), "search_by_genre"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_watched_movies"), "watched_movies"),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_saved_movies"), "saved_movies"),
		),
	)
}

func (s *BotService) backToMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(s.t("btn_back_menu"))),
	)
}

// filteredListKeyboard is shown under a filtered watched list: back to
// the menu or restore the unfiltered list.
func (s *BotService) filteredListKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(s.t("btn_back_menu")),
			tgbotapi.NewKeyboardButton(s.t("btn_show_all_watched")),
		),
	)
}

// navKeyboard offers page moves only in the directions that exist.
func (s *BotService) navKeyboard(page, maxPage int) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	var nav []tgbotapi.KeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewKeyboardButton(s.t("btn_prev_page")))
	}
	if page < maxPage {
		nav = append(nav, tgbotapi.NewKeyboardButton(s.t("btn_next_page")))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(s.t("btn_back_menu"))))
	return tgbotapi.NewReplyKeyboard(rows...)
}

// searchMovieButtons is the short-card button set for fresh search
// results and the random pick.
func (s *BotService) searchMovieButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_details"), actionData("movie_details", userID, movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_save_later"), actionData("movie_save", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_watched"), actionData("set_watched", userID, movieID)),
		),
	)
}

func (s *BotService) fullInfoMovieButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_collapse"), actionData("movie_collapse", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_save_later"), actionData("movie_save", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_watched"), actionData("set_watched", userID, movieID)),
		),
	)
}

func (s *BotService) savedMovieButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_details"), actionData("mds", userID, movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_mark_watched"), actionData("movie_set_watched", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_delete"), actionData("movie_delete", userID, movieID)),
		),
	)
}

func (s *BotService) savedMovieFullButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_collapse"), actionData("mcs", userID, movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_mark_watched"), actionData("movie_set_watched", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_delete"), actionData("movie_delete", userID, movieID)),
		),
	)
}

func (s *BotService) watchedMovieButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_details"), actionData("mdw", userID, movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_rate"), actionData("movie_rate", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_delete"), actionData("movie_delete", userID, movieID)),
		),
	)
}

func (s *BotService) watchedMovieFullButtons(userID uuid.UUID, movieID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_collapse"), actionData("mcw", userID, movieID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_rate"), actionData("movie_rate", userID, movieID)),
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_delete"), actionData("movie_delete", userID, movieID)),
		),
	)
}

func (s *BotService) watchedFilterButtons() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.t("btn_filter_by_rating"), "watched_filter"),
		),
	)
}
