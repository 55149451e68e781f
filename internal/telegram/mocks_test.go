package telegram

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kinobot/frontend/internal/backend"
	"kinobot/frontend/internal/genres"
	"kinobot/frontend/internal/localization"
	"kinobot/frontend/internal/session"
)

// fakeBot records every Chattable the service sends so tests can assert
// on rendered messages, edits and callback acknowledgements.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	sendErr  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: 1000 + len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var msgs []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (f *fakeBot) texts() []string {
	var texts []string
	for _, msg := range f.messages() {
		texts = append(texts, msg.Text)
	}
	return texts
}

func (f *fakeBot) photos() []tgbotapi.PhotoConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var photos []tgbotapi.PhotoConfig
	for _, c := range f.sent {
		if photo, ok := c.(tgbotapi.PhotoConfig); ok {
			photos = append(photos, photo)
		}
	}
	return photos
}

func (f *fakeBot) edits() []tgbotapi.EditMessageCaptionConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var edits []tgbotapi.EditMessageCaptionConfig
	for _, c := range f.sent {
		if edit, ok := c.(tgbotapi.EditMessageCaptionConfig); ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

func (f *fakeBot) acks() []tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var acks []tgbotapi.CallbackConfig
	for _, c := range f.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			acks = append(acks, cb)
		}
	}
	return acks
}

func (f *fakeBot) deletes() []tgbotapi.DeleteMessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deletes []tgbotapi.DeleteMessageConfig
	for _, c := range f.requests {
		if del, ok := c.(tgbotapi.DeleteMessageConfig); ok {
			deletes = append(deletes, del)
		}
	}
	return deletes
}

// MockBackend is a testify mock of the movie backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SaveUser(ctx context.Context, chatID int64) (uuid.UUID, error) {
	args := m.Called(ctx, chatID)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *MockBackend) RandomMovie(ctx context.Context) (backend.Movie, error) {
	args := m.Called(ctx)
	movie, _ := args.Get(0).(backend.Movie)
	return movie, args.Error(1)
}

func (m *MockBackend) Search(ctx context.Context, userID uuid.UUID, query string) ([]backend.Movie, error) {
	args := m.Called(ctx, userID, query)
	movies, _ := args.Get(0).([]backend.Movie)
	return movies, args.Error(1)
}

func (m *MockBackend) SearchByGenre(ctx context.Context, userID uuid.UUID, genreID int) ([]backend.Movie, error) {
	args := m.Called(ctx, userID, genreID)
	movies, _ := args.Get(0).([]backend.Movie)
	return movies, args.Error(1)
}

func (m *MockBackend) Unwatched(ctx context.Context, userID uuid.UUID) ([]backend.ListItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]backend.ListItem)
	return items, args.Error(1)
}

func (m *MockBackend) Watched(ctx context.Context, userID uuid.UUID) ([]backend.ListItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]backend.ListItem)
	return items, args.Error(1)
}

func (m *MockBackend) WatchedFiltered(ctx context.Context, userID uuid.UUID, minRating float64) ([]backend.ListItem, error) {
	args := m.Called(ctx, userID, minRating)
	items, _ := args.Get(0).([]backend.ListItem)
	return items, args.Error(1)
}

func (m *MockBackend) Stats(ctx context.Context, userID uuid.UUID) (backend.Stats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(backend.Stats)
	return stats, args.Error(1)
}

func (m *MockBackend) Genres(ctx context.Context) ([]backend.Genre, error) {
	args := m.Called(ctx)
	catalog, _ := args.Get(0).([]backend.Genre)
	return catalog, args.Error(1)
}

func (m *MockBackend) SaveMovie(ctx context.Context, userID uuid.UUID, movie backend.Movie) error {
	return m.Called(ctx, userID, movie).Error(0)
}

func (m *MockBackend) AddWatched(ctx context.Context, userID uuid.UUID, movie backend.Movie) error {
	return m.Called(ctx, userID, movie).Error(0)
}

func (m *MockBackend) SetRating(ctx context.Context, userID uuid.UUID, movieID int, rating float64) error {
	return m.Called(ctx, userID, movieID, rating).Error(0)
}

func (m *MockBackend) DeleteMovie(ctx context.Context, userID uuid.UUID, movieID int) error {
	return m.Called(ctx, userID, movieID).Error(0)
}

// uuidFixture is a stable identity for tests that do not care which
// user the payload names.
var uuidFixture = uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6")

func newTestService(t *testing.T) (*BotService, *fakeBot, *MockBackend) {
	t.Helper()
	loc, err := localization.NewLocalizer("../localization", "uk")
	require.NoError(t, err)

	bot := &fakeBot{}
	api := new(MockBackend)
	svc := NewBotService(bot, api, session.NewStore(), genres.NewIndex(), loc, "uk", 3)
	return svc, bot, api
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func callbackQuery(chatID int64, messageID int, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

func fixtureMovie(t *testing.T, id int, title string, voteAverage float64) backend.Movie {
	t.Helper()
	payload := fmt.Sprintf(`{"id":%d,"title":%q,"vote_average":%g,"release_date":"2010-07-15","overview":"overview"}`, id, title, voteAverage)
	movie, err := backend.ParseMovie([]byte(payload))
	require.NoError(t, err)
	return movie
}

func fixtureMovies(t *testing.T, n int) []backend.Movie {
	t.Helper()
	movies := make([]backend.Movie, 0, n)
	for i := 0; i < n; i++ {
		movies = append(movies, fixtureMovie(t, i+1, fmt.Sprintf("Movie %d", i+1), 7))
	}
	return movies
}
