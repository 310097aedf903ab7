// Package candidate walks a record of dictated commands, synthesises
// concrete and abstract composite-command candidates from every bounded
// contiguous chain of commands, and aggregates their usage statistics.
package candidate

import (
	"math"

	"dictrec/pkg/action"
)

// Kind distinguishes a concrete candidate (an exact action sequence) from
// an abstract one (parameterised by a repeat count or dictated prose).
type Kind int

const (
	Concrete Kind = iota
	Abstract
)

// noLastChain marks a candidate that has not yet counted any usage.
const noLastChain = -1

// Candidate is a proposed composite command together with the usage
// statistics the generator has accumulated for it so far.
type Candidate struct {
	Kind    Kind
	Name    string
	Actions []action.Action

	UsageCount   int
	TotalWords   int
	lastChainEnd int

	// Instantiations and WordsSavedAccumulator are meaningful only for
	// Kind == Abstract.
	Instantiations       *action.Set
	WordsSavedAccumulator int
}

func newCandidate(kind Kind, name string, actions []action.Action) *Candidate {
	c := &Candidate{Kind: kind, Name: name, Actions: actions, lastChainEnd: noLastChain}
	if kind == Abstract {
		c.Instantiations = action.NewSet()
	}
	return c
}

// Key returns the canonical candidate-set key for this candidate's action
// sequence.
func (c *Candidate) Key() string {
	return action.CanonicalActions(c.Actions)
}

// AverageWords returns the mean number of dictated words across counted
// usages, or 0 if the candidate has never been used.
func (c *Candidate) AverageWords() float64 {
	if c.UsageCount == 0 {
		return 0
	}
	return float64(c.TotalWords) / float64(c.UsageCount)
}

// WordsSaved is the estimated spoken-word cost avoided by having this
// candidate exist. For concrete candidates it is usage_count times
// (truncated average words dictated minus one) - the truncation to an
// integer happens before the subtraction, matching the prototype this was
// distilled from. For abstract candidates it is the accumulator maintained
// incrementally as each distinct instantiation is counted.
func (c *Candidate) WordsSaved() int {
	if c.Kind == Abstract {
		return c.WordsSavedAccumulator
	}
	if c.UsageCount == 0 {
		return 0
	}
	avg := int(math.Floor(c.AverageWords()))
	return c.UsageCount * (avg - 1)
}

// processUsage applies the non-overlap invariant (O): a chain counts toward
// this candidate only if its ending record index strictly exceeds the last
// counted chain's ending index. Returns whether the usage was counted.
func (c *Candidate) processUsage(endingIndex, wordCount int) bool {
	if c.lastChainEnd != noLastChain && endingIndex <= c.lastChainEnd {
		return false
	}
	c.lastChainEnd = endingIndex
	c.UsageCount++
	c.TotalWords += wordCount
	return true
}

// expandedActionCount counts each non-repeat action as 1 and each repeat(n)
// action as n, matching the ground truth's compute_number_of_actions: a
// repeat stands in for the n actions it folds together, so the survival
// filter below sees the chain's real action cost rather than its folded
// length.
func expandedActionCount(actions []action.Action) int {
	n := 0
	for _, a := range actions {
		if a.IsRepeat() {
			n += a.RepeatCount()
			continue
		}
		n++
	}
	return n
}

// passesFilter applies the post-generation survival predicate from the
// candidate generator's design: concrete candidates need positive words
// saved, more than one usage, and either a low action-to-word ratio or
// enough usages to offset a higher one; abstract candidates additionally
// need a non-trivial average word count, more than two distinct
// instantiations, and at least one word saved.
func (c *Candidate) passesFilter() bool {
	if c.WordsSaved() <= 0 || c.UsageCount <= 1 {
		return false
	}
	avg := c.AverageWords()
	actions := float64(expandedActionCount(c.Actions))
	if !(actions/avg < 2 || actions*math.Sqrt(float64(c.UsageCount)) > avg) {
		return false
	}
	if c.Kind != Abstract {
		return true
	}
	return avg >= 2 && c.Instantiations.Len() > 2 && c.WordsSaved() >= 1
}
