// Package sanitize turns Typst source into a flat stream of lowercase words.
//
// Every transform is a total string -> string function. They are destructive
// and order-sensitive, so callers should go through Pipeline rather than
// composing them by hand.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// Non-greedy so that two unrelated equations on one line are stripped
	// separately. A literal `$` inside math is not handled.
	equationRe = regexp.MustCompile(`(?s)\$.*?\$`)

	// Innermost group only; StripParenthesized iterates to a fixed point.
	innermostParenRe = regexp.MustCompile(`\([^()]*\)`)

	commandRe = regexp.MustCompile(`[#@]` + nonSpace + `*`)

	// A punctuation mark and whatever is glued after it on the same token.
	punctuationRe = regexp.MustCompile(`[|,.'\-:;?\[\]<>="]` + nonSpace + `*`)

	whitespaceRe = regexp.MustCompile(space + `+`)
)

// RE2 \s is [\t\n\f\r ] only. These classes match what unicode.IsSpace
// accepts: vertical tab, NEL and the Unicode separators (NBSP, em space...).
const (
	space    = `[\s\v\x{85}\p{Z}]`
	nonSpace = `[^\s\v\x{85}\p{Z}]`
)

// PunctuationSet lists the characters StripPunctuationFragments treats as noise.
const PunctuationSet = `|,.'-:;?[]<>="`

// StripEquations removes inline math delimited by a pair of `$`.
func StripEquations(s string) string {
	return equationRe.ReplaceAllString(s, "")
}

// StripParenthesized removes parenthesized groups, nested ones included.
// Unbalanced parens are left alone.
func StripParenthesized(s string) string {
	for {
		next := innermostParenRe.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

// StripCommands removes `#command` and `@label` invocations up to the next
// whitespace, arguments included.
func StripCommands(s string) string {
	return commandRe.ReplaceAllString(s, "")
}

// StripPunctuationFragments removes every punctuation mark from PunctuationSet
// together with the rest of its token, then lowercases the result.
//
// "gud." becomes "gud", "word[^1]" becomes "word" and "don't" becomes "don".
func StripPunctuationFragments(s string) string {
	return strings.ToLower(punctuationRe.ReplaceAllString(s, ""))
}

// CollapseWhitespace replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}
