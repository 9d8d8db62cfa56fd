package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/typstspell/pkg/typstspell/attribute"
)

func summaryFor(lines, unknown []string, words int) Summary {
	m := attribute.NewMatcher(unknown, attribute.Options{})
	return Summary{
		Lines:   lines,
		Words:   words,
		Matcher: m,
		Report:  m.Attribute(lines),
	}
}

func TestHighlightANSI(t *testing.T) {
	s := summaryFor([]string{"The result is gud.", "nothing wrong", "gud gud"}, []string{"gud"}, 6)

	var buf bytes.Buffer
	err := Highlight(&buf, s, "", termenv.WithProfile(termenv.ANSI))
	require.NoError(t, err)

	red := func(x string) string { return "\x1b[31m" + x + "\x1b[0m" }
	want := "The result is " + red("gud") + ".\n" +
		"nothing wrong\n" +
		red("gud") + " " + red("gud") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestHighlightPlainWhenNoColor(t *testing.T) {
	lines := []string{"Teh cat", "", "ends with teh"}
	s := summaryFor(lines, []string{"teh"}, 4)

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, s, "", termenv.WithProfile(termenv.Ascii)))

	assert.Equal(t, "Teh cat\n\nends with teh\n", buf.String())
}

func TestHighlightOneLinePerDocumentLine(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	s := summaryFor(lines, nil, 4)

	var buf bytes.Buffer
	require.NoError(t, NewHighlighter(&buf, "#ff0000", termenv.WithProfile(termenv.TrueColor)).Write(s.Lines, s.Matcher))

	assert.Equal(t, len(lines), strings.Count(buf.String(), "\n"))
}

func TestHighlightWithoutMatcherIsPlain(t *testing.T) {
	s := Summary{Lines: []string{"nothing", "to flag"}, Words: 3}

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, s, "", termenv.WithProfile(termenv.ANSI)))

	assert.Equal(t, "nothing\nto flag\n", buf.String())
}

func TestHighlightKeepsOriginalCase(t *testing.T) {
	s := summaryFor([]string{"İstanbul is big"}, []string{"istanbul"}, 3)

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, s, "", termenv.WithProfile(termenv.ANSI)))

	assert.Equal(t, "\x1b[31mİstanbul\x1b[0m is big\n", buf.String())
}

func TestReport(t *testing.T) {
	s := summaryFor([]string{"The $x+y$ result is gud."}, []string{"gud"}, 4)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, s))

	assert.Equal(t, "Checked 4 words.\nLine 0: gud\n", buf.String())
}

func TestReportSkipsCleanLinesAndJoinsTokens(t *testing.T) {
	lines := []string{"teh first", "clean", "teh and gud", "gud"}
	s := summaryFor(lines, []string{"teh", "gud", "teh", "gud"}, 7)
	s.LineBase = 1

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, s))

	want := "Checked 7 words.\n" +
		"Line 1: teh\n" +
		"Line 3: teh, gud\n" +
		"Line 4: gud\n"
	assert.Equal(t, want, buf.String())
}

func TestReportAllClear(t *testing.T) {
	s := summaryFor(nil, nil, 0)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, s))

	assert.Equal(t, "Checked 0 words.\n"+AllClearMessage+"\n", buf.String())
}

func TestHTML(t *testing.T) {
	s := summaryFor([]string{"The result is gud.", "x < y"}, []string{"gud"}, 4)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "notes <draft>.typ", s))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>notes &lt;draft&gt;.typ</title>")
	assert.Contains(t, out, "The result is <mark>gud</mark>.")
	assert.Contains(t, out, "x &lt; y")
	assert.Contains(t, out, "<p>Checked 4 words.</p>")
	assert.Contains(t, out, "<li>Line 0: gud</li>")
}

func TestHTMLAllClear(t *testing.T) {
	s := summaryFor([]string{"all fine"}, nil, 2)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "doc", s))

	assert.Contains(t, buf.String(), AllClearMessage)
	assert.NotContains(t, buf.String(), "<mark>")
}
