package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Python,  SQL!  ", "python sql"},
		{"C++ and C#", "c++ and c#"},
		{"Node.js / REST-API", "node js rest api"},
		{"Опыт работы: Go", "опыт работы go"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "input %q", c.in)
	}
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Built REST APIs in JavaScript and rest api design")

	assert.True(t, ContainsPhrase(text, "rest api"))
	assert.True(t, ContainsPhrase(text, "javascript"))
	// whole-word boundaries: no java inside javascript, no api inside apis
	assert.False(t, ContainsPhrase(text, "java"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("  a \t b c\n\n\nd  ")
	assert.Equal(t, "a b c\nd", got)
}
