package docio

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
)

// ReadLines loads a document as its ordered lines. Both "\n" and "\r\n" line
// endings are accepted; a final newline does not produce an empty last line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", internalerr.ErrFileRead, path, err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text into lines the way ReadLines does.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
