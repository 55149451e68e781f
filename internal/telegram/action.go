package telegram

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseAction splits an inline-button payload of the shape
// "prefix:userUUID:movieID". It reports false on any mismatch (field
// count, prefix, malformed uuid or id) so the router can fall through
// to the next candidate action.
func ParseAction(data, prefix string) (uuid.UUID, int, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != prefix {
		return uuid.Nil, 0, false
	}

	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, 0, false
	}
	movieID, err := strconv.Atoi(parts[2])
	if err != nil {
		return uuid.Nil, 0, false
	}
	return userID, movieID, true
}
