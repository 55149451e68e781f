package session

import (
	"sync"

	"github.com/google/uuid"

	"kinobot/frontend/internal/backend"
)

type movieKey struct {
	userID  uuid.UUID
	movieID int
}

// Movies caches full movie records per (user, movie) pair so button
// taps can recover the object a short callback payload cannot carry.
type Movies struct {
	mu    sync.RWMutex
	items map[movieKey]backend.Movie
}

func NewMovies() *Movies {
	return &Movies{items: make(map[movieKey]backend.Movie)}
}

func (m *Movies) Get(userID uuid.UUID, movieID int) (backend.Movie, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movie, ok := m.items[movieKey{userID, movieID}]
	return movie, ok
}

func (m *Movies) Set(userID uuid.UUID, movieID int, movie backend.Movie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[movieKey{userID, movieID}] = movie
}

// UpdateUserRating replaces the cached record with a copy carrying the
// new rating. Returns false when no record is cached; a rating flow
// always follows a view that cached one, so callers just skip the edit.
func (m *Movies) UpdateUserRating(userID uuid.UUID, movieID int, rating float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := movieKey{userID, movieID}
	movie, ok := m.items[key]
	if !ok {
		return false
	}
	m.items[key] = movie.WithUserRating(rating)
	return true
}

// ClearUser drops every record cached for one user.
func (m *Movies) ClearUser(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if key.userID == userID {
			delete(m.items, key)
		}
	}
}

// Len reports the number of cached records.
func (m *Movies) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
