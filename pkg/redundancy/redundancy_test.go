package redundancy

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictrec/pkg/action"
	"dictrec/pkg/candidate"
)

func newConcrete(name string, usage int, actions ...action.Action) *candidate.Candidate {
	return &candidate.Candidate{
		Kind:       candidate.Concrete,
		Name:       name,
		Actions:    actions,
		UsageCount: usage,
		TotalWords: usage * 2,
	}
}

func TestExactSubsequenceIsDominated(t *testing.T) {
	x := newConcrete("a", 3, action.New("key", action.StringArg("a")))
	y := newConcrete("a b", 3,
		action.New("key", action.StringArg("a")),
		action.New("key", action.StringArg("b")),
	)
	f := NewFilter(zerolog.Nop())
	out := f.Apply([]*candidate.Candidate{x, y}, 2)
	require.Len(t, out, 1)
	assert.Equal(t, "a b", out[0].Name)
}

func TestDifferentUsageCountIsNotDominated(t *testing.T) {
	x := newConcrete("a", 2, action.New("key", action.StringArg("a")))
	y := newConcrete("a b", 3,
		action.New("key", action.StringArg("a")),
		action.New("key", action.StringArg("b")),
	)
	f := NewFilter(zerolog.Nop())
	out := f.Apply([]*candidate.Candidate{x, y}, 2)
	assert.Len(t, out, 2)
}

func TestLeadingInsertSubstringIsDominated(t *testing.T) {
	x := newConcrete("bar", 2, action.NewInsert("bar"))
	y := newConcrete("foobar", 2, action.NewInsert("foobar"))
	f := NewFilter(zerolog.Nop())
	out := f.Apply([]*candidate.Candidate{x, y}, 2)
	require.Len(t, out, 1)
	assert.Equal(t, "foobar", out[0].Name)
}

func TestMiddleInsertRequiresExactMatch(t *testing.T) {
	x := newConcrete("bar", 2, action.NewInsert("bar"))
	y := newConcrete("wrap", 2,
		action.New("key", action.StringArg("a")),
		action.NewInsert("foobar"),
		action.New("key", action.StringArg("b")),
	)
	f := NewFilter(zerolog.Nop())
	out := f.Apply([]*candidate.Candidate{x, y}, 2)
	assert.Len(t, out, 2, "a middle-position insert must match exactly, not by substring")
}

func TestUnrelatedCandidatesBothSurvive(t *testing.T) {
	x := newConcrete("a", 2, action.New("key", action.StringArg("a")))
	y := newConcrete("b", 2, action.New("key", action.StringArg("b")))
	f := NewFilter(zerolog.Nop())
	out := f.Apply([]*candidate.Candidate{x, y}, 2)
	assert.Len(t, out, 2)
}
