// Package backend is the HTTP client for the movie backend. Every call
// is plain request/response JSON; a non-2xx status is an error and the
// body is not inspected further.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// API is the movie-backend capability consumed by the bot.
type API interface {
	SaveUser(ctx context.Context, chatID int64) (uuid.UUID, error)
	RandomMovie(ctx context.Context) (Movie, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]Movie, error)
	SearchByGenre(ctx context.Context, userID uuid.UUID, genreID int) ([]Movie, error)
	Unwatched(ctx context.Context, userID uuid.UUID) ([]ListItem, error)
	Watched(ctx context.Context, userID uuid.UUID) ([]ListItem, error)
	WatchedFiltered(ctx context.Context, userID uuid.UUID, minRating float64) ([]ListItem, error)
	Stats(ctx context.Context, userID uuid.UUID) (Stats, error)
	Genres(ctx context.Context) ([]Genre, error)
	SaveMovie(ctx context.Context, userID uuid.UUID, movie Movie) error
	AddWatched(ctx context.Context, userID uuid.UUID, movie Movie) error
	SetRating(ctx context.Context, userID uuid.UUID, movieID int, rating float64) error
	DeleteMovie(ctx context.Context, userID uuid.UUID, movieID int) error
}

// Client talks to the backend over HTTP+JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client. A nil httpClient falls back to
// http.DefaultClient; the bot does not override transport timeouts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SaveUser provisions (or re-confirms) the backend identity for a chat.
// The backend treats it as an idempotent upsert.
func (c *Client) SaveUser(ctx context.Context, chatID int64) (uuid.UUID, error) {
	data, err := c.do(ctx, http.MethodPost, "/user/save", map[string]int64{"chatId": chatID})
	if err != nil {
		return uuid.Nil, err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return uuid.Nil, fmt.Errorf("decode user id: %w", err)
	}
	userID, err := uuid.Parse(result.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse user id %q: %w", result.ID, err)
	}
	return userID, nil
}

func (c *Client) RandomMovie(ctx context.Context) (Movie, error) {
	data, err := c.do(ctx, http.MethodGet, "/movie/random", nil)
	if err != nil {
		return Movie{}, err
	}
	return ParseMovie(data)
}

func (c *Client) movies(ctx context.Context, path string) ([]Movie, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rawMovies []json.RawMessage
	if err := json.Unmarshal(data, &rawMovies); err != nil {
		return nil, fmt.Errorf("decode movie array: %w", err)
	}
	movies := make([]Movie, 0, len(rawMovies))
	for _, raw := range rawMovies {
		movie, err := ParseMovie(raw)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func (c *Client) Search(ctx context.Context, userID uuid.UUID, query string) ([]Movie, error) {
	return c.movies(ctx, "/search/"+userID.String()+"?query="+url.QueryEscape(query))
}

func (c *Client) SearchByGenre(ctx context.Context, userID uuid.UUID, genreID int) ([]Movie, error) {
	return c.movies(ctx, "/search-by-genre/"+userID.String()+"?genre="+strconv.Itoa(genreID))
}

func (c *Client) list(ctx context.Context, path string) ([]ListItem, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(data)
}

func (c *Client) Unwatched(ctx context.Context, userID uuid.UUID) ([]ListItem, error) {
	return c.list(ctx, "/movie/unwatched/"+userID.String())
}

func (c *Client) Watched(ctx context.Context, userID uuid.UUID) ([]ListItem, error) {
	return c.list(ctx, "/movie/watched/"+userID.String())
}

func (c *Client) WatchedFiltered(ctx context.Context, userID uuid.UUID, minRating float64) ([]ListItem, error) {
	min := strconv.FormatFloat(minRating, 'f', -1, 64)
	return c.list(ctx, "/movie/watched/"+userID.String()+"/filter?minRating="+min)
}

func (c *Client) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	data, err := c.do(ctx, http.MethodGet, "/movie/stats/"+userID.String(), nil)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	data, err := c.do(ctx, http.MethodGet, "/app/genres", nil)
	if err != nil {
		return nil, err
	}
	var genres []Genre
	if err := json.Unmarshal(data, &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	return genres, nil
}

// SaveMovie stores the raw cached movie to the saved (unwatched) list.
func (c *Client) SaveMovie(ctx context.Context, userID uuid.UUID, movie Movie) error {
	_, err := c.do(ctx, http.MethodPost, "/movie/"+userID.String()+"/save", movie.Raw())
	return err
}

// AddWatched stores the raw cached movie to the watched list.
func (c *Client) AddWatched(ctx context.Context, userID uuid.UUID, movie Movie) error {
	_, err := c.do(ctx, http.MethodPost, "/movie/"+userID.String()+"/add-watched", movie.Raw())
	return err
}

func (c *Client) SetRating(ctx context.Context, userID uuid.UUID, movieID int, rating float64) error {
	path := "/movie/" + userID.String() + "/" + strconv.Itoa(movieID) + "/set-rating"
	_, err := c.do(ctx, http.MethodPut, path, map[string]float64{"rating": rating})
	return err
}

func (c *Client) DeleteMovie(ctx context.Context, userID uuid.UUID, movieID int) error {
	_, err := c.do(ctx, http.MethodDelete, "/movie/"+userID.String()+"/"+strconv.Itoa(movieID), nil)
	return err
}
