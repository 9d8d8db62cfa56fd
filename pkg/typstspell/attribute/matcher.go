// Package attribute maps the flat list of unknown tokens back onto the
// document lines they came from.
//
// Matching is unanchored substring search, so a short unknown token can match
// inside a longer, correctly spelled word. Options.Strict restricts matches to
// whole words instead.
package attribute

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options controls how tokens are matched against lines.
type Options struct {
	// Strict only accepts matches not surrounded by letters or digits.
	Strict bool
}

// Matcher finds unknown tokens inside original document lines using one
// combined alternation. Tokens are matched literally against the lowercased
// line, the same mapping the sanitizer applied to produce them.
type Matcher struct {
	tokens []string
	byLen  []string // tokens, longest first
	re     *regexp.Regexp
	strict bool
}

// NewMatcher builds a matcher for the distinct tokens in unknown.
func NewMatcher(unknown []string, opts Options) *Matcher {
	m := &Matcher{strict: opts.Strict}

	seen := make(map[string]bool, len(unknown))
	for _, tok := range unknown {
		tok = strings.ToLower(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		m.tokens = append(m.tokens, tok)
	}
	if len(m.tokens) == 0 {
		return m
	}

	// Longest first: RE2 alternation is leftmost-first, so "gud" must not
	// shadow "gudd" at the same position.
	m.byLen = make([]string, len(m.tokens))
	copy(m.byLen, m.tokens)
	sort.SliceStable(m.byLen, func(i, j int) bool { return len(m.byLen[i]) > len(m.byLen[j]) })
	alts := make([]string, len(m.byLen))
	for i, a := range m.byLen {
		alts[i] = regexp.QuoteMeta(a)
	}
	m.re = regexp.MustCompile(strings.Join(alts, "|"))
	return m
}

// Tokens returns the distinct tokens in first-occurrence order.
func (m *Matcher) Tokens() []string {
	out := make([]string, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// Empty reports whether the matcher has no tokens to look for.
func (m *Matcher) Empty() bool {
	return m == nil || m.re == nil
}

// Span is a byte range [Start, End) inside a line.
type Span struct {
	Start int
	End   int
}

// FindAll returns the non-overlapping matches in line, left to right, as
// byte ranges of line itself.
func (m *Matcher) FindAll(line string) []Span {
	if m.Empty() {
		return nil
	}

	f := fold(line)
	var spans []Span
	pos := 0
	for pos < len(f.text) {
		loc := m.re.FindStringIndex(f.text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if m.strict {
			end = m.boundedAt(f.text, start)
		}
		if end < 0 {
			_, size := utf8.DecodeRuneInString(f.text[start:])
			pos = start + size
			continue
		}
		spans = append(spans, Span{Start: f.orig[start], End: f.orig[end]})
		pos = end
	}
	return spans
}

// boundedAt returns the end of the longest token at start that is a whole
// word, or -1.
func (m *Matcher) boundedAt(text string, start int) int {
	for _, tok := range m.byLen {
		if strings.HasPrefix(text[start:], tok) && isWordBounded(text, start, start+len(tok)) {
			return start + len(tok)
		}
	}
	return -1
}

// MatchesIn returns the distinct tokens occurring in line, in first-occurrence
// order of the unknown list. Every token is tested on its own, so overlapping
// tokens are all reported.
func (m *Matcher) MatchesIn(line string) []string {
	if m.Empty() {
		return nil
	}
	lower := fold(line).text
	if !m.re.MatchString(lower) {
		return nil
	}

	var found []string
	for _, tok := range m.tokens {
		if m.contains(lower, tok) {
			found = append(found, tok)
		}
	}
	return found
}

func (m *Matcher) contains(line, tok string) bool {
	if !m.strict {
		return strings.Contains(line, tok)
	}
	offset := 0
	for {
		i := strings.Index(line[offset:], tok)
		if i < 0 {
			return false
		}
		start := offset + i
		if isWordBounded(line, start, start+len(tok)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(line[start:])
		offset = start + size
	}
}

// folded is a lowercased line plus, for every byte of text, the offset in
// the original line of the rune it came from. Lowercasing can change a
// rune's encoded length ('İ' is two bytes, 'i' one), so spans found in text
// are mapped back through orig. orig has len(text)+1 entries.
type folded struct {
	text string
	orig []int
}

// fold lowercases rune by rune, which yields the same text as strings.ToLower.
func fold(line string) folded {
	var b strings.Builder
	b.Grow(len(line))
	orig := make([]int, 0, len(line)+1)
	for i, r := range line {
		n := b.Len()
		b.WriteRune(unicode.ToLower(r))
		for j := n; j < b.Len(); j++ {
			orig = append(orig, i)
		}
	}
	orig = append(orig, len(line))
	return folded{text: b.String(), orig: orig}
}

func isWordBounded(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
