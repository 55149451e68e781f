// Package session holds the per-chat state the bot keeps between
// updates: resolved backend identities, cached movie records, paged
// search results, the active free-text input mode and the pending
// rating target. Everything lives in memory for the lifetime of the
// process; a restart starts every chat from scratch.
package session

// Store bundles the per-chat stores so handlers receive them as one
// injected dependency instead of ambient globals.
type Store struct {
	Users    *Users
	Movies   *Movies
	Results  *Results
	Messages *Messages
	States   *States
	Ratings  *PendingRatings
}

func NewStore() *Store {
	return &Store{
		Users:    NewUsers(),
		Movies:   NewMovies(),
		Results:  NewResults(),
		Messages: NewMessages(),
		States:   NewStates(),
		Ratings:  NewPendingRatings(),
	}
}
