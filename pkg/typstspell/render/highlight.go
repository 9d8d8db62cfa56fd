package render

import (
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cognicore/typstspell/pkg/typstspell/attribute"
)

// DefaultColor is the ANSI color used for unknown tokens.
const DefaultColor = "1"

// Highlighter writes document lines with unknown tokens colored.
// Colors degrade to plain text when the output is not a terminal or
// NO_COLOR is set.
type Highlighter struct {
	out   *termenv.Output
	color termenv.Color
}

// NewHighlighter creates a highlighter writing to w. color is an ANSI index
// ("1") or a hex value ("#ff5555"); empty means DefaultColor.
func NewHighlighter(w io.Writer, color string, opts ...termenv.OutputOption) *Highlighter {
	if color == "" {
		color = DefaultColor
	}
	out := termenv.NewOutput(w, opts...)
	return &Highlighter{out: out, color: out.Color(color)}
}

// Write renders every line: plain spans in the default color, matched spans in
// the flagged color. Each line ends with a newline, matched or not.
func (h *Highlighter) Write(lines []string, m *attribute.Matcher) error {
	if m.Empty() {
		for _, line := range lines {
			if _, err := io.WriteString(h.out, line+"\n"); err != nil {
				return err
			}
		}
		return nil
	}

	var b strings.Builder
	for _, line := range lines {
		b.Reset()
		pos := 0
		for _, sp := range m.FindAll(line) {
			b.WriteString(line[pos:sp.Start])
			b.WriteString(h.out.String(line[sp.Start:sp.End]).Foreground(h.color).String())
			pos = sp.End
		}
		b.WriteString(line[pos:])
		b.WriteByte('\n')

		if _, err := io.WriteString(h.out, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Highlight is a convenience wrapper around NewHighlighter and Write.
func Highlight(w io.Writer, s Summary, color string, opts ...termenv.OutputOption) error {
	return NewHighlighter(w, color, opts...).Write(s.Lines, s.Matcher)
}
