package textsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparateBasic(t *testing.T) {
	sep := Separate("This_is_a_test")
	assert.Equal(t, "", sep.Prefix)
	assert.Equal(t, []string{"This", "is", "a", "test"}, sep.Parts)
	assert.Equal(t, []string{"_", "_", "_"}, sep.Inner)
	assert.Equal(t, "", sep.Trailing)
}

func TestSeparateWithPrefixAndTrailing(t *testing.T) {
	sep := Separate("__foo__bar__")
	assert.Equal(t, "__", sep.Prefix)
	assert.Equal(t, []string{"foo", "bar"}, sep.Parts)
	assert.Equal(t, []string{"__"}, sep.Inner)
	assert.Equal(t, "__", sep.Trailing)
}

// TestProseMatchSpansParts reproduces S2: insert text "This_is_a_test",
// prose "this is a test" should match spanning parts 0..3.
func TestProseMatchSpansParts(t *testing.T) {
	sep := Separate("This_is_a_test")
	m, ok := sep.FindProse("this is a test")
	require.True(t, ok)
	assert.Equal(t, 0, m.PartIndex)
	assert.True(t, m.Spanning)
	assert.Equal(t, 4, m.WordCount)
	assert.Equal(t, "_", sep.FirstProseSeparator(m))
	assert.Equal(t, "This_is_a_test", sep.ProsePortionOfText(m))
}

func TestProseMatchSamePart(t *testing.T) {
	sep := Separate("pleasetestnowthanks")
	m, ok := sep.FindProse("test now")
	require.True(t, ok)
	assert.False(t, m.Spanning)
	assert.Equal(t, "testnow", sep.ProsePortionOfText(m))
}

func TestProseMatchNotFound(t *testing.T) {
	sep := Separate("completely_different_text")
	_, ok := sep.FindProse("not present here")
	assert.False(t, ok)
}

func TestTextBeforeAfterProseRoundTrip(t *testing.T) {
	original := "prefix_This_is_a_test_suffix"
	sep := Separate(original)
	m, ok := sep.FindProse("this is a test")
	require.True(t, ok)
	rebuilt := sep.TextBeforeProse(m) + sep.ProsePortionOfText(m) + sep.TextAfterProse(m)
	assert.Equal(t, original, rebuilt)
}

func TestClassifyWordCase(t *testing.T) {
	cases := map[string]WordCase{
		"test": CaseLower,
		"TEST": CaseUpper,
		"Test": CaseCapitalized,
		"tEst": CaseInvalid,
	}
	for word, want := range cases {
		assert.Equal(t, want, ClassifyWordCase(word), word)
	}
}

func TestCasePatternSimplification(t *testing.T) {
	pattern := CasePattern([]WordCase{CaseLower, CaseCapitalized, CaseUpper, CaseCapitalized})
	assert.Equal(t, "lower capitalized upper capitalized", pattern)

	collapsed := CasePattern([]WordCase{CaseLower, CaseLower, CaseUpper, CaseUpper})
	assert.Equal(t, "lower lower upper", collapsed)
}

func TestClassifyWordsRejectsInvalid(t *testing.T) {
	_, ok := ClassifyWords([]string{"This", "tEst"})
	assert.False(t, ok)
}
