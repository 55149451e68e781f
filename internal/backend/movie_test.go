package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixJSON = `{"id":603,"title":"Матриця","original_title":"The Matrix",` +
	`"release_date":"1999-03-30","vote_average":8.7,"overview":"...",` +
	`"genre_ids":[28,878],"poster_path":"/abc.jpg","custom_field":"kept"}`

func TestParseMovie(t *testing.T) {
	movie, err := ParseMovie([]byte(matrixJSON))
	require.NoError(t, err)

	assert.Equal(t, 603, movie.ID)
	assert.Equal(t, "Матриця", movie.Title)
	assert.Equal(t, "The Matrix", movie.OriginalTitle)
	assert.Equal(t, "1999-03-30", movie.ReleaseDate)
	assert.Equal(t, 8.7, movie.VoteAverage)
	assert.Equal(t, []int{28, 878}, movie.GenreIDs)
	assert.Equal(t, "/abc.jpg", movie.PosterPath)
	assert.Nil(t, movie.UserRating)
	assert.False(t, movie.Watched)
}

func TestParseMovieInvalid(t *testing.T) {
	_, err := ParseMovie([]byte(`{"id":`))
	assert.Error(t, err)
}

func TestMovieRawPreservesUnknownFields(t *testing.T) {
	movie, err := ParseMovie([]byte(matrixJSON))
	require.NoError(t, err)

	// the save/add-watched requests must carry the payload verbatim,
	// including fields the struct does not model
	assert.JSONEq(t, matrixJSON, string(movie.Raw()))
}

func TestMovieRawWithoutSource(t *testing.T) {
	movie := Movie{ID: 7, Title: "Seven"}

	raw := movie.Raw()
	reparsed, err := ParseMovie(raw)
	require.NoError(t, err)
	assert.Equal(t, 7, reparsed.ID)
	assert.Equal(t, "Seven", reparsed.Title)
}

func TestWithUserRating(t *testing.T) {
	movie, err := ParseMovie([]byte(matrixJSON))
	require.NoError(t, err)

	rated := movie.WithUserRating(9)

	require.NotNil(t, rated.UserRating)
	assert.Equal(t, 9.0, *rated.UserRating)
	assert.Equal(t, movie.Title, rated.Title)
	assert.Equal(t, movie.VoteAverage, rated.VoteAverage)
	assert.Contains(t, string(rated.Raw()), `"custom_field":"kept"`)

	// receiver stays untouched
	assert.Nil(t, movie.UserRating)
}

func TestDecodeList(t *testing.T) {
	payload := `[
		{"tmdb_id":603,"details":"{\"id\":1,\"title\":\"The Matrix\"}"},
		{"tmdb_id":604,"details":""},
		{"tmdb_id":605,"details":"{\"id\":3,\"title\":\"Revolutions\"}"}
	]`

	items, err := decodeList([]byte(payload))
	require.NoError(t, err)

	require.Len(t, items, 2, "entries without details are skipped")
	assert.Equal(t, 603, items[0].TmdbID)
	assert.Equal(t, "The Matrix", items[0].Movie.Title)
	assert.Equal(t, 1, items[0].Movie.ID, "list id and details id are distinct")
	assert.Equal(t, 605, items[1].TmdbID)
}

func TestDecodeListBadDetails(t *testing.T) {
	_, err := decodeList([]byte(`[{"tmdb_id":1,"details":"not json"}]`))
	assert.Error(t, err)
}
