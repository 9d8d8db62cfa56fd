package sanitize

import "strings"

// Stage is one named rewrite in the sanitization sequence.
type Stage struct {
	Name  string
	Apply func(string) string
}

// DefaultStages returns the fixed sanitization order.
//
// Parens are stripped twice: removing an equation can expose a group that
// was previously split by `$`. New stages are appended, never reordered.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "parens", Apply: StripParenthesized},
		{Name: "equations", Apply: StripEquations},
		{Name: "parens", Apply: StripParenthesized},
		{Name: "commands", Apply: StripCommands},
		{Name: "punctuation", Apply: StripPunctuationFragments},
		{Name: "whitespace", Apply: CollapseWhitespace},
	}
}

// Pipeline orchestrates the sanitization flow:
// lines → joined text → stages in order → normalized text
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline with the given stages, or DefaultStages when
// none are given.
func NewPipeline(stages ...Stage) *Pipeline {
	if len(stages) == 0 {
		stages = DefaultStages()
	}
	return &Pipeline{stages: stages}
}

// Normalize joins the document lines with a single space and runs every stage.
func (p *Pipeline) Normalize(lines []string) string {
	text := strings.Join(lines, " ")
	for _, st := range p.stages {
		text = st.Apply(text)
	}
	return text
}

// StepResult is the output of one stage during Trace.
type StepResult struct {
	Stage  string
	Output string
}

// Trace behaves like Normalize but keeps every intermediate result.
func (p *Pipeline) Trace(lines []string) []StepResult {
	text := strings.Join(lines, " ")
	steps := make([]StepResult, 0, len(p.stages))
	for _, st := range p.stages {
		text = st.Apply(text)
		steps = append(steps, StepResult{Stage: st.Name, Output: text})
	}
	return steps
}

// Process normalizes and tokenizes in one call.
func (p *Pipeline) Process(lines []string) []string {
	return Tokenize(p.Normalize(lines))
}

// Normalize runs the default pipeline over lines.
func Normalize(lines []string) string {
	return NewPipeline().Normalize(lines)
}
