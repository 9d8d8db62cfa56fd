package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Report writes the plain-text summary:
//
//	Checked 4 words.
//	Line 0: gud
//
// Lines without unknown tokens are omitted. When no line matches, the
// all-clear message replaces the line list.
func Report(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Checked %d words.\n", s.Words)

	if s.Report.Empty() {
		fmt.Fprintln(bw, AllClearMessage)
		return bw.Flush()
	}

	for _, lm := range s.Report.Matched() {
		fmt.Fprintf(bw, "Line %d: %s\n", lm.Index+s.LineBase, strings.Join(lm.Tokens, ", "))
	}
	return bw.Flush()
}
