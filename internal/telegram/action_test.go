package telegram

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	userID := uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6")

	gotUser, gotMovie, ok := ParseAction("movie_details:3fa85f64-5717-4562-b3fc-2c963f66afa6:42", "movie_details")
	require.True(t, ok)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, 42, gotMovie)
}

func TestParseActionRejects(t *testing.T) {
	valid := "movie_details:3fa85f64-5717-4562-b3fc-2c963f66afa6:42"

	tests := []struct {
		name   string
		data   string
		prefix string
	}{
		{"wrong prefix", valid, "movie_save"},
		{"prefix is not a prefix match", "movie_details_extra:3fa85f64-5717-4562-b3fc-2c963f66afa6:42", "movie_details"},
		{"too few fields", "movie_details:42", "movie_details"},
		{"too many fields", valid + ":7", "movie_details"},
		{"bad uuid", "movie_details:not-a-uuid:42", "movie_details"},
		{"bad movie id", "movie_details:3fa85f64-5717-4562-b3fc-2c963f66afa6:abc", "movie_details"},
		{"empty payload", "", "movie_details"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseAction(tt.data, tt.prefix)
			assert.False(t, ok)
		})
	}
}
