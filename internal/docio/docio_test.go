package docio

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "single no newline", input: "one", want: []string{"one"}},
		{name: "trailing newline", input: "one\ntwo\n", want: []string{"one", "two"}},
		{name: "crlf", input: "one\r\ntwo\r\n", want: []string{"one", "two"}},
		{name: "blank lines kept", input: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "only newline", input: "\n", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.typ")
	if err := os.WriteFile(path, []byte("= Title\nSome text.\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if want := []string{"= Title", "Some text."}; !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadLines = %q, want %q", lines, want)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.typ"))
	if !errors.Is(err, internalerr.ErrFileRead) {
		t.Errorf("Expected ErrFileRead, got %v", err)
	}
}
