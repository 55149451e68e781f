package backend

import (
	"encoding/json"
	"fmt"
)

// Movie is one movie payload as produced by the backend. The original
// JSON is kept verbatim so that save/add-watched requests round-trip
// exactly the record the backend issued, whatever extra fields it has.
type Movie struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	ReleaseDate   string   `json:"release_date"`
	VoteAverage   float64  `json:"vote_average"`
	Overview      string   `json:"overview"`
	GenreIDs      []int    `json:"genre_ids"`
	PosterPath    string   `json:"poster_path"`
	UserRating    *float64 `json:"user_rating"`
	Watched       bool     `json:"watched"`

	raw json.RawMessage
}

// ParseMovie decodes a backend movie payload, keeping the raw bytes.
func ParseMovie(data []byte) (Movie, error) {
	var m Movie
	if err := json.Unmarshal(data, &m); err != nil {
		return Movie{}, fmt.Errorf("decode movie: %w", err)
	}
	m.raw = append(json.RawMessage(nil), data...)
	return m, nil
}

// Raw returns the movie exactly as the backend sent it.
func (m Movie) Raw() json.RawMessage {
	if m.raw != nil {
		return m.raw
	}
	data, err := json.Marshal(m)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// WithUserRating returns a copy of the movie whose user_rating field is
// replaced. The receiver is never mutated; sharing cached records
// between handlers stays safe.
func (m Movie) WithUserRating(rating float64) Movie {
	var fields map[string]any
	if err := json.Unmarshal(m.Raw(), &fields); err != nil {
		fields = map[string]any{}
	}
	fields["user_rating"] = rating

	data, err := json.Marshal(fields)
	if err != nil {
		return m
	}
	updated, err := ParseMovie(data)
	if err != nil {
		return m
	}
	return updated
}

// ListItem is one element of the saved/watched list envelopes. The
// backend wraps each movie as {tmdb_id, details} with details being a
// nested JSON string; TmdbID is the identifier callbacks carry, and it
// may differ from the id inside the details payload.
type ListItem struct {
	TmdbID int
	Movie  Movie
}

type listEnvelope struct {
	TmdbID  int    `json:"tmdb_id"`
	Details string `json:"details"`
}

func decodeList(data []byte) ([]ListItem, error) {
	var envelopes []listEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("decode movie list: %w", err)
	}

	items := make([]ListItem, 0, len(envelopes))
	for _, e := range envelopes {
		if e.Details == "" {
			continue
		}
		movie, err := ParseMovie([]byte(e.Details))
		if err != nil {
			return nil, fmt.Errorf("decode details of tmdb_id %d: %w", e.TmdbID, err)
		}
		items = append(items, ListItem{TmdbID: e.TmdbID, Movie: movie})
	}
	return items, nil
}

// Stats is the watched/unwatched counters for one user.
type Stats struct {
	Watched   int `json:"watched"`
	Unwatched int `json:"unwatched"`
}

// Genre is one entry of the backend genre catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
