package arg

import (
	"errors"
	"strings"
)

// Query joins positional arguments into one search query.
func Query(args []string) (string, error) {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return "", errors.New("a non-empty query is required")
	}
	return q, nil
}
