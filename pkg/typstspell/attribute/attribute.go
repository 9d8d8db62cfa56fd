package attribute

// Report holds, for every original line, the distinct unknown tokens found on
// it. Lines is indexed 1:1 with the document.
type Report struct {
	Lines [][]string
}

// LineMatch is one line that has at least one unknown token.
type LineMatch struct {
	Index  int
	Tokens []string
}

// Attribute matches unknown tokens against each original line.
func Attribute(lines []string, unknown []string, opts Options) Report {
	return NewMatcher(unknown, opts).Attribute(lines)
}

// Attribute matches the matcher's tokens against each line.
func (m *Matcher) Attribute(lines []string) Report {
	r := Report{Lines: make([][]string, len(lines))}
	for i, line := range lines {
		r.Lines[i] = m.MatchesIn(line)
	}
	return r
}

// Matched returns only the lines with matches, in document order.
func (r Report) Matched() []LineMatch {
	var out []LineMatch
	for i, toks := range r.Lines {
		if len(toks) == 0 {
			continue
		}
		out = append(out, LineMatch{Index: i, Tokens: toks})
	}
	return out
}

// Empty reports whether no line has a match.
func (r Report) Empty() bool {
	for _, toks := range r.Lines {
		if len(toks) > 0 {
			return false
		}
	}
	return true
}
