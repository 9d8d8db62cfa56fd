package sanitize

import "strings"

// Tokenize splits normalized text on single spaces. Empty strings are dropped;
// order and duplicates are kept.
func Tokenize(text string) []string {
	parts := strings.Split(text, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}
