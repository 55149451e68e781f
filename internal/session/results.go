package session

import (
	"sync"

	"kinobot/frontend/internal/backend"
)

type resultSet struct {
	movies []backend.Movie
	page   int
}

// Results keeps the last search (or genre) result list per chat along
// with the page the user is on.
type Results struct {
	mu   sync.RWMutex
	sets map[int64]resultSet
}

func NewResults() *Results {
	return &Results{sets: make(map[int64]resultSet)}
}

// Set replaces the chat's result list wholesale and rewinds to page 0.
func (r *Results) Set(chatID int64, movies []backend.Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[chatID] = resultSet{movies: movies}
}

func (r *Results) Get(chatID int64) ([]backend.Movie, int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[chatID]
	return set.movies, set.page, ok
}

// SetPage moves the chat to the given page, clamped into the valid
// range so a stale or racing request can never leave the index out of
// bounds. pageSize must match the size used for rendering.
func (r *Results) SetPage(chatID int64, page, pageSize int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[chatID]
	if !ok {
		return
	}
	max := MaxPage(len(set.movies), pageSize)
	p := page
	if p < 0 {
		p = 0
	}
	if p > max {
		p = max
	}
	set.page = p
	r.sets[chatID] = set
}

// Slice returns the movies visible on the current page together with
// the page index and the last page index.
func (r *Results) Slice(chatID int64, pageSize int) (movies []backend.Movie, page, maxPage int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, found := r.sets[chatID]
	if !found || len(set.movies) == 0 {
		return nil, 0, 0, false
	}

	maxPage = MaxPage(len(set.movies), pageSize)
	start := set.page * pageSize
	if start > len(set.movies) {
		start = len(set.movies)
	}
	end := start + pageSize
	if end > len(set.movies) {
		end = len(set.movies)
	}
	return set.movies[start:end], set.page, maxPage, true
}

func (r *Results) Clear(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, chatID)
}

// MaxPage is the zero-based index of the last page for count items.
func MaxPage(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count - 1) / pageSize
}
