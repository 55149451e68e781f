package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Users maps chat ids to the backend user identity resolved for them.
type Users struct {
	mu  sync.RWMutex
	ids map[int64]uuid.UUID
}

func NewUsers() *Users {
	return &Users{ids: make(map[int64]uuid.UUID)}
}

func (u *Users) Get(chatID int64) (uuid.UUID, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	id, ok := u.ids[chatID]
	return id, ok
}

func (u *Users) Set(chatID int64, userID uuid.UUID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ids[chatID] = userID
}

// ChatIDs returns every chat the bot has resolved an identity for, in
// stable order. The reminder sweep iterates this snapshot.
func (u *Users) ChatIDs() []int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	ids := make([]int64, 0, len(u.ids))
	for chatID := range u.ids {
		ids = append(ids, chatID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
