package query

import "strings"

// ApplySuggestion merges suggestion into q. A suggestion that completes the
// last token replaces it; anything else is appended as a new token. The
// result is joined with single spaces.
func ApplySuggestion(q, suggestion string) string {
	suggestion = strings.TrimSpace(suggestion)
	tokens := strings.Fields(q)
	if suggestion == "" {
		return strings.Join(tokens, " ")
	}
	if len(tokens) == 0 {
		return suggestion
	}

	last := len(tokens) - 1
	if strings.HasPrefix(strings.ToLower(suggestion), strings.ToLower(tokens[last])) {
		tokens[last] = suggestion
	} else {
		tokens = append(tokens, suggestion)
	}
	return strings.Join(tokens, " ")
}

// Length is the user-visible length of q, counted in runes.
func Length(q string) int {
	return len([]rune(q))
}
