// Package textsep locates a dictated prose sub-phrase inside an inserted
// string and classifies the separator and letter-case pattern it appears
// under, so the candidate generator can decide whether an insert is a
// plausible candidate for prose-parameterised abstraction.
package textsep

import "unicode"

// run is one maximal span of characters sharing the same part/separator
// classification.
type run struct {
	isPart bool
	text   string
}

func splitRuns(text string, isPart func(rune) bool) []run {
	var runs []run
	var cur []rune
	var curIsPart bool
	first := true
	for _, r := range text {
		p := isPart(r)
		if first {
			curIsPart = p
			first = false
		} else if p != curIsPart {
			runs = append(runs, run{curIsPart, string(cur)})
			cur = nil
			curIsPart = p
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		runs = append(runs, run{curIsPart, string(cur)})
	}
	return runs
}

// Separation is the result of splitting a string into alternating "parts"
// (maximal runs of a predicate, alphabetic by default) and "separators"
// (maximal runs of the complement). Prefix holds a leading separator run,
// if any; Trailing holds a trailing one. Inner[i] is the separator between
// Parts[i] and Parts[i+1], so len(Inner) == max(len(Parts)-1, 0).
type Separation struct {
	Prefix   string
	Parts    []string
	Inner    []string
	Trailing string
}

// DefaultIsPart classifies Unicode letters as part characters; everything
// else (digits, spaces, underscores, punctuation) is a separator.
func DefaultIsPart(r rune) bool {
	return unicode.IsLetter(r)
}

// Separate splits text using DefaultIsPart.
func Separate(text string) Separation {
	return SeparateFunc(text, DefaultIsPart)
}

// SeparateFunc splits text into parts and separators under a custom
// character predicate.
func SeparateFunc(text string, isPart func(rune) bool) Separation {
	runs := splitRuns(text, isPart)
	var sep Separation
	i := 0
	if len(runs) > 0 && !runs[0].isPart {
		sep.Prefix = runs[0].text
		i = 1
	}
	for ; i < len(runs); i++ {
		if runs[i].isPart {
			sep.Parts = append(sep.Parts, runs[i].text)
			continue
		}
		if i == len(runs)-1 {
			sep.Trailing = runs[i].text
		} else {
			sep.Inner = append(sep.Inner, runs[i].text)
		}
	}
	return sep
}

// SeparatorConsistent reports whether all inner separators in [lo, hi) are
// equal. It is vacuously true when there are fewer than two to compare.
func (s Separation) SeparatorConsistent(lo, hi int) bool {
	if hi-lo <= 1 {
		return true
	}
	first := s.Inner[lo]
	for i := lo + 1; i < hi; i++ {
		if s.Inner[i] != first {
			return false
		}
	}
	return true
}
