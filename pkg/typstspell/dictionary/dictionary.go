package dictionary

import (
	"sort"
	"strings"
)

// Dictionary is the set of known words for one check run.
// Words are stored lowercase; lookups are case-insensitive.
type Dictionary struct {
	words map[string]struct{}
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{words: make(map[string]struct{})}
}

// Build creates a dictionary from word-list lines. Lines are trimmed and
// lowercased; blank lines are skipped and duplicates collapse.
func Build(lines []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(lines))}
	d.Add(lines...)
	return d
}

// Add inserts words into the dictionary.
func (d *Dictionary) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		d.words[w] = struct{}{}
	}
}

// Merge adds every word of other to d.
func (d *Dictionary) Merge(other *Dictionary) {
	if other == nil {
		return
	}
	for w := range other.words {
		d.words[w] = struct{}{}
	}
}

// IsKnown reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) IsKnown(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// All returns all words, sorted.
func (d *Dictionary) All() []string {
	result := make([]string, 0, len(d.words))
	for w := range d.words {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Checker is the membership oracle FindUnknown needs.
type Checker interface {
	IsKnown(word string) bool
}

// FindUnknown returns the tokens the checker does not know, keeping their
// order and repetitions: a misspelling used three times is reported three times.
func FindUnknown(tokens []string, dict Checker) []string {
	unknown := make([]string, 0)
	for _, tok := range tokens {
		if !dict.IsKnown(tok) {
			unknown = append(unknown, tok)
		}
	}
	return unknown
}
