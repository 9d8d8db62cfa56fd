package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttribute(t *testing.T) {
	lines := []string{
		"Teh first line.",
		"A clean line.",
		"teh second and gud.",
		"",
	}

	r := Attribute(lines, []string{"teh", "teh", "gud"}, Options{})

	require.Len(t, r.Lines, len(lines))
	assert.Equal(t, []string{"teh"}, r.Lines[0])
	assert.Nil(t, r.Lines[1])
	assert.Equal(t, []string{"teh", "gud"}, r.Lines[2])
	assert.Nil(t, r.Lines[3])
	assert.False(t, r.Empty())

	matched := r.Matched()
	require.Len(t, matched, 2)
	assert.Equal(t, LineMatch{Index: 0, Tokens: []string{"teh"}}, matched[0])
	assert.Equal(t, LineMatch{Index: 2, Tokens: []string{"teh", "gud"}}, matched[1])
}

func TestAttributeExhaustive(t *testing.T) {
	lines := []string{"alpha beta", "gamma", "betamax delta", "zeta"}
	unknown := []string{"beta", "delta", "eta"}

	r := Attribute(lines, unknown, Options{})

	for i, line := range lines {
		for _, tok := range unknown {
			if !containsFold(line, tok) {
				continue
			}
			assert.Contains(t, r.Lines[i], tok, "line %d %q should list %q", i, line, tok)
		}
	}
}

func TestAttributeNoUnknown(t *testing.T) {
	r := Attribute([]string{"a", "b"}, nil, Options{})

	assert.Len(t, r.Lines, 2)
	assert.True(t, r.Empty())
	assert.Empty(t, r.Matched())
}

func TestAttributeEmptyDocument(t *testing.T) {
	r := Attribute(nil, []string{"x"}, Options{})

	assert.Empty(t, r.Lines)
	assert.True(t, r.Empty())
}

func containsFold(line, tok string) bool {
	m := NewMatcher([]string{tok}, Options{})
	return len(m.FindAll(line)) > 0
}
