package session

import "sync"

// Messages remembers the id of the movie card last rendered per chat,
// so the rating flow can edit that card in place after the score is
// submitted.
type Messages struct {
	mu  sync.RWMutex
	ids map[int64]int
}

func NewMessages() *Messages {
	return &Messages{ids: make(map[int64]int)}
}

func (m *Messages) Get(chatID int64) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.ids[chatID]
	return id, ok
}

func (m *Messages) Set(chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[chatID] = messageID
}

func (m *Messages) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, chatID)
}
