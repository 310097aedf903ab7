package textsep

import "strings"

// ProseMatch records where a multi-word prose phrase was located within a
// Separation. PartIndex is the first part involved; when Spanning is true,
// the match continues through the following WordCount-1 parts. Begin is the
// byte offset into Parts[PartIndex] where the match starts; End is the
// byte offset into the last involved part where it ends.
type ProseMatch struct {
	PartIndex int
	Spanning  bool
	WordCount int
	Begin     int
	End       int
}

// lastPartIndex returns the index of the last part this match touches.
func (m ProseMatch) lastPartIndex() int {
	if !m.Spanning {
		return m.PartIndex
	}
	return m.PartIndex + m.WordCount - 1
}

// FindProse searches s's parts for the given prose phrase, trying each part
// index in turn and returning the first match: either prose appears intact
// (modulo internal whitespace) inside a single part, or it spans several
// consecutive parts whose boundary words prefix/suffix-match the phrase's
// first and last words, with the middle words equal outright.
func (s Separation) FindProse(prose string) (ProseMatch, bool) {
	words := strings.Fields(strings.ToLower(prose))
	if len(words) == 0 {
		return ProseMatch{}, false
	}
	stripped := strings.Join(words, "")

	for i := range s.Parts {
		partLower := strings.ToLower(s.Parts[i])
		if idx := strings.Index(partLower, stripped); idx >= 0 {
			return ProseMatch{
				PartIndex: i,
				Spanning:  false,
				WordCount: len(words),
				Begin:     idx,
				End:       idx + len(stripped),
			}, true
		}
		if len(words) >= 2 && len(words)+i <= len(s.Parts) {
			if m, ok := s.tryCrossPartMatch(i, words); ok {
				return m, true
			}
		}
	}
	return ProseMatch{}, false
}

func (s Separation) tryCrossPartMatch(i int, words []string) (ProseMatch, bool) {
	first := words[0]
	last := words[len(words)-1]

	firstPartLower := strings.ToLower(s.Parts[i])
	if !strings.HasSuffix(firstPartLower, first) {
		return ProseMatch{}, false
	}
	for j := 1; j < len(words)-1; j++ {
		if strings.ToLower(s.Parts[i+j]) != words[j] {
			return ProseMatch{}, false
		}
	}
	lastIdx := i + len(words) - 1
	lastPartLower := strings.ToLower(s.Parts[lastIdx])
	if !strings.HasPrefix(lastPartLower, last) {
		return ProseMatch{}, false
	}
	return ProseMatch{
		PartIndex: i,
		Spanning:  true,
		WordCount: len(words),
		Begin:     len(firstPartLower) - len(first),
		End:       len(last),
	}, true
}

// FirstProseSeparator returns the separator immediately after the match's
// first part when the match spans multiple parts, and "" otherwise.
func (s Separation) FirstProseSeparator(m ProseMatch) string {
	if !m.Spanning {
		return ""
	}
	return s.Inner[m.PartIndex]
}

// ProsePortionOfText returns the original-cased substring of the source
// text that the match covers, preserving the casing and any internal
// separators between parts.
func (s Separation) ProsePortionOfText(m ProseMatch) string {
	if !m.Spanning {
		return s.Parts[m.PartIndex][m.Begin:m.End]
	}
	var b strings.Builder
	b.WriteString(s.Parts[m.PartIndex][m.Begin:])
	for k := m.PartIndex; k < m.lastPartIndex(); k++ {
		b.WriteString(s.Inner[k])
		if k+1 == m.lastPartIndex() {
			b.WriteString(s.Parts[k+1][:m.End])
		} else {
			b.WriteString(s.Parts[k+1])
		}
	}
	return b.String()
}

// ProsePortionWords returns the original-cased text of each matched word.
// For a spanning match this is one element per word of the prose phrase;
// for a match inside a single part, the part holds no whitespace, so the
// whole matched text comes back as one element and is not split per word.
func (s Separation) ProsePortionWords(m ProseMatch) []string {
	if !m.Spanning {
		return strings.Fields(s.ProsePortionOfText(m))
	}
	words := make([]string, 0, m.WordCount)
	words = append(words, s.Parts[m.PartIndex][m.Begin:])
	for k := m.PartIndex + 1; k < m.lastPartIndex(); k++ {
		words = append(words, s.Parts[k])
	}
	words = append(words, s.Parts[m.lastPartIndex()][:m.End])
	return words
}

// TextBeforeProse rebuilds the text preceding the match, exactly as it
// appeared in the source.
func (s Separation) TextBeforeProse(m ProseMatch) string {
	var b strings.Builder
	b.WriteString(s.Prefix)
	for k := 0; k < m.PartIndex; k++ {
		b.WriteString(s.Parts[k])
		b.WriteString(s.Inner[k])
	}
	b.WriteString(s.Parts[m.PartIndex][:m.Begin])
	return b.String()
}

// TextAfterProse rebuilds the text following the match, exactly as it
// appeared in the source.
func (s Separation) TextAfterProse(m ProseMatch) string {
	last := m.lastPartIndex()
	var b strings.Builder
	b.WriteString(s.Parts[last][m.End:])
	for k := last + 1; k < len(s.Parts); k++ {
		b.WriteString(s.Inner[k-1])
		b.WriteString(s.Parts[k])
	}
	b.WriteString(s.Trailing)
	return b.String()
}
