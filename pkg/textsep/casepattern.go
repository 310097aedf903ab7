package textsep

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordCase classifies the letter-case pattern of a single matched prose
// word.
type WordCase int

const (
	CaseLower WordCase = iota
	CaseUpper
	CaseCapitalized
	CaseInvalid
)

func (c WordCase) String() string {
	switch c {
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	case CaseCapitalized:
		return "capitalized"
	default:
		return "invalid"
	}
}

// Case transformers are Unicode-aware (not byte-range ASCII checks), so
// that a dictated word outside the basic Latin block still classifies
// correctly instead of always falling through to invalid.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// ClassifyWordCase determines whether word is entirely lowercase, entirely
// uppercase, capitalized (first letter upper, rest lower), or none of
// those (invalid).
func ClassifyWordCase(word string) WordCase {
	if word == "" {
		return CaseInvalid
	}
	switch {
	case word == upperCaser.String(word) && word != lowerCaser.String(word):
		return CaseUpper
	case word == lowerCaser.String(word):
		return CaseLower
	case word == titleCaser.String(word):
		return CaseCapitalized
	default:
		return CaseInvalid
	}
}

// ClassifyWords classifies every word and reports ok=false as soon as any
// word is invalid, matching the rule that a match with any invalid word is
// rejected outright.
func ClassifyWords(words []string) (cases []WordCase, ok bool) {
	cases = make([]WordCase, len(words))
	for i, w := range words {
		c := ClassifyWordCase(w)
		if c == CaseInvalid {
			return cases, false
		}
		cases[i] = c
	}
	return cases, true
}

// CasePattern renders a sequence of per-word classifications into a
// space-joined pattern string, collapsing a maximal run of trailing
// identical cases into a single instance - e.g.
// [lower, lower, upper, upper] -> "lower lower upper".
func CasePattern(words []WordCase) string {
	simplified := simplifyTrailingRun(words)
	parts := make([]string, len(simplified))
	for i, c := range simplified {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func simplifyTrailingRun(words []WordCase) []WordCase {
	if len(words) == 0 {
		return words
	}
	end := len(words) - 1
	start := end
	for start > 0 && words[start-1] == words[end] {
		start--
	}
	out := make([]WordCase, 0, start+1)
	out = append(out, words[:start]...)
	out = append(out, words[end])
	return out
}
