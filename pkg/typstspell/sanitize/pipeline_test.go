package sanitize

import (
	"reflect"
	"testing"
)

func TestDefaultStageOrder(t *testing.T) {
	want := []string{"parens", "equations", "parens", "commands", "punctuation", "whitespace"}

	stages := DefaultStages()
	if len(stages) != len(want) {
		t.Fatalf("Expected %d stages, got %d", len(want), len(stages))
	}
	for i, st := range stages {
		if st.Name != want[i] {
			t.Errorf("stage %d = %q, want %q", i, st.Name, want[i])
		}
	}
}

func TestPipelineProcess(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "equation and trailing period",
			lines: []string{"The $x+y$ result is gud."},
			want:  []string{"the", "result", "is", "gud"},
		},
		{
			name:  "parenthetical aside",
			lines: []string{"(ignore this) Keep this."},
			want:  []string{"keep", "this"},
		},
		{
			name:  "command with arguments",
			lines: []string{"as shown #cite(foo) before"},
			want:  []string{"as", "shown", "before"},
		},
		{
			name:  "command alone",
			lines: []string{"#cite(foo)"},
			want:  []string{},
		},
		{
			name:  "lines joined with a space",
			lines: []string{"first line", "second line"},
			want:  []string{"first", "line", "second", "line"},
		},
		{
			name:  "heading markup",
			lines: []string{"= Introduction", "Some *bold* words"},
			want:  []string{"introduction", "some", "*bold*", "words"},
		},
		{
			name:  "unicode whitespace separates words",
			lines: []string{"the word.\u00a0next #cmd\u00a0prose"},
			want:  []string{"the", "word", "next", "prose"},
		},
		{
			name:  "em space between words",
			lines: []string{"one\u2003two\u2003\u2003three"},
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "empty document",
			lines: nil,
			want:  []string{},
		},
	}

	p := NewPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Process(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Process(%q) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}

func TestNormalizeNeverDoubleSpaces(t *testing.T) {
	got := Normalize([]string{"a  (x)  b", "\t$y$\tc"})
	if got != "a b c" {
		t.Errorf("Normalize = %q, want %q", got, "a b c")
	}
}

func TestTraceMatchesNormalize(t *testing.T) {
	lines := []string{"The $x+y$ result (aside) is #emph[gud]."}
	p := NewPipeline()

	steps := p.Trace(lines)
	if len(steps) != len(DefaultStages()) {
		t.Fatalf("Expected %d steps, got %d", len(DefaultStages()), len(steps))
	}
	if last := steps[len(steps)-1].Output; last != p.Normalize(lines) {
		t.Errorf("Trace final output %q differs from Normalize %q", last, p.Normalize(lines))
	}
	if steps[1].Stage != "equations" {
		t.Errorf("second step = %q, want equations", steps[1].Stage)
	}
}

func TestCustomStages(t *testing.T) {
	p := NewPipeline(Stage{Name: "whitespace", Apply: CollapseWhitespace})

	got := p.Normalize([]string{"Keep (Parens)", "Here."})
	if got != "Keep (Parens) Here." {
		t.Errorf("Normalize = %q", got)
	}
	if n := len(p.Trace(nil)); n != 1 {
		t.Errorf("Expected 1 stage, got %d", n)
	}
}
