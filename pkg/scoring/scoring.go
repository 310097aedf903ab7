// Package scoring computes the non-additive heuristic score of a selected
// set of candidates: the sum, over the set, of each candidate's words
// saved weighted by how little it overlaps with the rest of the set,
// either through shared constituent actions or shared insert text.
package scoring

import (
	"dictrec/pkg/candidate"
)

// Score returns the heuristic score of the candidate set s.
func Score(s []*candidate.Candidate) float64 {
	if len(s) == 0 {
		return 0
	}
	freq := actionFrequencies(s)
	inserts := singleInsertTexts(s)

	var total float64
	for _, c := range s {
		total += weight(c, freq, inserts) * float64(c.WordsSaved())
	}
	return total
}

// actionFrequencies counts, for each distinct action (by canonical
// string), how many candidates in s contain it at least once.
func actionFrequencies(s []*candidate.Candidate) map[string]int {
	freq := make(map[string]int)
	for _, c := range s {
		seen := make(map[string]bool)
		for _, a := range c.Actions {
			key := a.CanonicalString()
			if seen[key] {
				continue
			}
			seen[key] = true
			freq[key]++
		}
	}
	return freq
}

// singleInsertTexts collects the insert text of every candidate in s whose
// entire action list is a single insert.
func singleInsertTexts(s []*candidate.Candidate) []string {
	var out []string
	for _, c := range s {
		if isSingleInsert(c) {
			out = append(out, c.Actions[0].InsertText())
		}
	}
	return out
}

func isSingleInsert(c *candidate.Candidate) bool {
	return len(c.Actions) == 1 && c.Actions[0].IsInsert()
}

func weight(c *candidate.Candidate, freq map[string]int, inserts []string) float64 {
	if isSingleInsert(c) && len(inserts) > 1 {
		return insertWeight(c.Actions[0].InsertText(), inserts)
	}
	var sum float64
	for _, a := range c.Actions {
		sum += 1 / float64(freq[a.CanonicalString()])
	}
	return sum / float64(len(c.Actions))
}

// insertWeight computes (|t|-sim)/|t| where sim is the length of the
// longest prefix-or-suffix overlap t has with any differently-valued
// string in inserts — either aligned (both prefixes, or both suffixes) or
// crossed (a prefix of one against a suffix of the other, as in "foobar"
// and "barfoo" sharing "foo"/"bar"). A sim of zero yields a weight of
// exactly 1.
func insertWeight(t string, inserts []string) float64 {
	tr := []rune(t)
	sim := 0
	for _, other := range inserts {
		if other == t {
			continue
		}
		or := []rune(other)
		for _, k := range []int{
			commonPrefixLen(tr, or),
			commonSuffixLen(tr, or),
			prefixSuffixMatch(tr, or),
			prefixSuffixMatch(or, tr),
		} {
			if k > sim {
				sim = k
			}
		}
	}
	if sim > len(tr) {
		sim = len(tr)
	}
	if sim == 0 {
		return 1
	}
	return float64(len(tr)-sim) / float64(len(tr))
}

func commonPrefixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// prefixSuffixMatch returns the longest k such that a's first k runes equal
// b's last k runes.
func prefixSuffixMatch(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for k := n; k >= 1; k-- {
		if string(a[:k]) == string(b[len(b)-k:]) {
			return k
		}
	}
	return 0
}
