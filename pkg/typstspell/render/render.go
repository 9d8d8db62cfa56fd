// Package render writes check results: colorized inline highlighting,
// a per-line text report, or a standalone HTML page.
package render

import "github.com/cognicore/typstspell/pkg/typstspell/attribute"

// AllClearMessage is printed by Report when no line has an unknown token.
const AllClearMessage = "No spelling errors found! (Equations and commands are not checked.)"

// Summary is what the renderers need from a finished check.
type Summary struct {
	Lines   []string
	Words   int
	Matcher *attribute.Matcher
	Report  attribute.Report

	// LineBase is added to the 0-based line index when printing.
	LineBase int
}
