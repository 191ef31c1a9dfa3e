package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Normalize lowers the string and replaces every non-word run with a single space.
// "+" and "#" count as word characters so skills like "c++" and "c#" survive.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens splits a normalized string into its tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// ContainsPhrase reports whether a normalized phrase occurs as whole words
// inside a normalized text. "rest api" is found in "... rest api ..." but
// not in "... rest apis ...", and "java" is not found inside "javascript".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}

var reCollapseWS = regexp.MustCompile(`[ \t\r\f\v]+`)
var reCollapseNL = regexp.MustCompile(`\n+`)

// CollapseWhitespace trims the string and collapses whitespace runs, keeping
// single newlines so paragraph structure survives extraction.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = reCollapseWS.ReplaceAllString(s, " ")
	s = reCollapseNL.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
