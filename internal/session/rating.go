package session

import (
	"sync"

	"github.com/google/uuid"
)

// RatingTarget names the movie a chat is about to rate.
type RatingTarget struct {
	UserID  uuid.UUID
	MovieID int
}

// PendingRatings holds the rating target per chat while the state
// machine waits for the numeric score. The slot is peeked on every
// attempt and cleared only once the rating is stored, so failed
// validation keeps the flow retryable.
type PendingRatings struct {
	mu    sync.RWMutex
	items map[int64]RatingTarget
}

func NewPendingRatings() *PendingRatings {
	return &PendingRatings{items: make(map[int64]RatingTarget)}
}

func (p *PendingRatings) Get(chatID int64) (RatingTarget, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	target, ok := p.items[chatID]
	return target, ok
}

func (p *PendingRatings) Set(chatID int64, target RatingTarget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[chatID] = target
}

func (p *PendingRatings) Clear(chatID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.items, chatID)
}
