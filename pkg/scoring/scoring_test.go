package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dictrec/pkg/action"
	"dictrec/pkg/candidate"
)

func single(name, insertText string, usage, totalWords int) *candidate.Candidate {
	return &candidate.Candidate{
		Kind:       candidate.Concrete,
		Name:       name,
		Actions:    []action.Action{action.NewInsert(insertText)},
		UsageCount: usage,
		TotalWords: totalWords,
	}
}

// withWordsSaved sets usage 1 and total words wordsSaved+1, so that
// Candidate.WordsSaved (usage*(avg-1)) returns wordsSaved and the fixtures
// below can be built from a words-saved target directly.
func withWordsSaved(c *candidate.Candidate, wordsSaved int) *candidate.Candidate {
	c.UsageCount = 1
	c.TotalWords = wordsSaved + 1
	return c
}

// TestScenarioS4 reproduces scenario S4 exactly: A and B are single inserts
// sharing a 3-rune prefix/suffix overlap, C is a two-action candidate whose
// actions are each unique to it.
func TestScenarioS4(t *testing.T) {
	a := withWordsSaved(single("A", "foobar", 0, 0), 10)
	b := withWordsSaved(single("B", "barfoo", 0, 0), 10)
	c := withWordsSaved(&candidate.Candidate{
		Kind: candidate.Concrete,
		Name: "C",
		Actions: []action.Action{
			action.New("key", action.StringArg("a")),
			action.New("key", action.StringArg("b")),
		},
	}, 5)

	assert.InDelta(t, 10, Score([]*candidate.Candidate{a}), 1e-9)
	assert.InDelta(t, 10, Score([]*candidate.Candidate{a, b}), 1e-9)
	assert.InDelta(t, 15, Score([]*candidate.Candidate{a, b, c}), 1e-9)
}

func TestScoreIsSetInvariantUnderPermutation(t *testing.T) {
	a := withWordsSaved(single("A", "foobar", 0, 0), 10)
	b := withWordsSaved(single("B", "barfoo", 0, 0), 10)
	c := withWordsSaved(&candidate.Candidate{
		Kind:    candidate.Concrete,
		Name:    "C",
		Actions: []action.Action{action.New("key", action.StringArg("a")), action.New("key", action.StringArg("b"))},
	}, 5)

	forward := Score([]*candidate.Candidate{a, b, c})
	reversed := Score([]*candidate.Candidate{c, b, a})
	assert.InDelta(t, forward, reversed, 1e-9)
}

func TestSingleInsertWithNoOverlapScoresFull(t *testing.T) {
	a := withWordsSaved(single("A", "zzz", 0, 0), 10)
	b := withWordsSaved(single("B", "qqq", 0, 0), 10)
	assert.InDelta(t, 20, Score([]*candidate.Candidate{a, b}), 1e-9)
}

func TestEmptySetScoresZero(t *testing.T) {
	assert.Equal(t, float64(0), Score(nil))
}
