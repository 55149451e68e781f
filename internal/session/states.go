package session

import "sync"

// InputState is the free-text mode a chat is in. It decides how the
// next plain message from that chat is interpreted.
type InputState int

const (
	StateNone InputState = iota
	StateSearch
	StateRating
	StateFilter
)

func (s InputState) String() string {
	switch s {
	case StateSearch:
		return "search"
	case StateRating:
		return "rating"
	case StateFilter:
		return "filter"
	default:
		return "none"
	}
}

// States tracks the input state per chat. Chats without an entry are
// in StateNone.
type States struct {
	mu     sync.RWMutex
	states map[int64]InputState
}

func NewStates() *States {
	return &States{states: make(map[int64]InputState)}
}

func (s *States) Get(chatID int64) InputState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[chatID]
}

func (s *States) Set(chatID int64, state InputState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateNone {
		delete(s.states, chatID)
		return
	}
	s.states[chatID] = state
}

func (s *States) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
