package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	query  string
	body   []byte
}

func newTestClient(t *testing.T, status int, response string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client()), captured
}

func TestSaveUser(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `{"id":"`+userID.String()+`"}`)

	got, err := client.SaveUser(context.Background(), 123456)
	require.NoError(t, err)

	assert.Equal(t, userID, got)
	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/user/save", captured.path)
	assert.JSONEq(t, `{"chatId":123456}`, string(captured.body))
}

func TestSaveUserBadID(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"id":"not-a-uuid"}`)

	_, err := client.SaveUser(context.Background(), 1)
	assert.Error(t, err)
}

func TestRandomMovie(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"id":603,"title":"The Matrix"}`)

	movie, err := client.RandomMovie(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/movie/random", captured.path)
	assert.Equal(t, 603, movie.ID)
}

func TestSearchEscapesQuery(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `[{"id":1,"title":"A"},{"id":2,"title":"B"}]`)

	movies, err := client.Search(context.Background(), userID, "назад у майбутнє 2")
	require.NoError(t, err)

	assert.Equal(t, "/search/"+userID.String(), captured.path)
	assert.Equal(t, "query="+"%D0%BD%D0%B0%D0%B7%D0%B0%D0%B4+%D1%83+%D0%BC%D0%B0%D0%B9%D0%B1%D1%83%D1%82%D0%BD%D1%94+2", captured.query)
	require.Len(t, movies, 2)
	assert.Equal(t, "A", movies[0].Title)
}

func TestSearchByGenre(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `[]`)

	movies, err := client.SearchByGenre(context.Background(), userID, 878)
	require.NoError(t, err)

	assert.Equal(t, "/search-by-genre/"+userID.String(), captured.path)
	assert.Equal(t, "genre=878", captured.query)
	assert.Empty(t, movies)
}

func TestUnwatchedEnvelope(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK,
		`[{"tmdb_id":603,"details":"{\"id\":603,\"title\":\"The Matrix\"}"}]`)

	items, err := client.Unwatched(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "/movie/unwatched/"+userID.String(), captured.path)
	require.Len(t, items, 1)
	assert.Equal(t, 603, items[0].TmdbID)
	assert.Equal(t, "The Matrix", items[0].Movie.Title)
}

func TestWatchedFilteredQuery(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `[]`)

	_, err := client.WatchedFiltered(context.Background(), userID, 7.5)
	require.NoError(t, err)

	assert.Equal(t, "/movie/watched/"+userID.String()+"/filter", captured.path)
	assert.Equal(t, "minRating=7.5", captured.query)
}

func TestStats(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `{"watched":12,"unwatched":5}`)

	stats, err := client.Stats(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "/movie/stats/"+userID.String(), captured.path)
	assert.Equal(t, Stats{Watched: 12, Unwatched: 5}, stats)
}

func TestGenres(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[{"id":28,"name":"Бойовик"}]`)

	genres, err := client.Genres(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/app/genres", captured.path)
	require.Len(t, genres, 1)
	assert.Equal(t, Genre{ID: 28, Name: "Бойовик"}, genres[0])
}

func TestSaveMovieSendsRawPayload(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `{}`)

	movie, err := ParseMovie([]byte(`{"id":603,"title":"The Matrix","custom":"field"}`))
	require.NoError(t, err)

	require.NoError(t, client.SaveMovie(context.Background(), userID, movie))

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/movie/"+userID.String()+"/save", captured.path)
	assert.JSONEq(t, `{"id":603,"title":"The Matrix","custom":"field"}`, string(captured.body))
}

func TestSetRating(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, `{}`)

	require.NoError(t, client.SetRating(context.Background(), userID, 603, 8.5))

	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "/movie/"+userID.String()+"/603/set-rating", captured.path)
	assert.JSONEq(t, `{"rating":8.5}`, string(captured.body))
}

func TestDeleteMovie(t *testing.T) {
	userID := uuid.New()
	client, captured := newTestClient(t, http.StatusOK, ``)

	require.NoError(t, client.DeleteMovie(context.Background(), userID, 603))

	assert.Equal(t, http.MethodDelete, captured.method)
	assert.Equal(t, "/movie/"+userID.String()+"/603", captured.path)
}

func TestUnexpectedStatus(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError, `boom`)

	_, err := client.RandomMovie(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
