// Package genres keeps the process-wide genre id to name mapping. It
// is loaded once at startup from the backend and only read afterwards;
// when loading fails the bot simply renders fewer genre names.
package genres

import (
	"sync"

	"kinobot/frontend/internal/backend"
)

type Index struct {
	mu    sync.RWMutex
	names map[int]string
}

func NewIndex() *Index {
	return &Index{names: make(map[int]string)}
}

// Set replaces the whole mapping.
func (i *Index) Set(genres []backend.Genre) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.names = make(map[int]string, len(genres))
	for _, g := range genres {
		i.names[g.ID] = g.Name
	}
}

func (i *Index) Name(id int) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	name, ok := i.names[id]
	return name, ok
}

func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.names) > 0
}
