package candidate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictrec/pkg/action"
)

func seconds(n uint32) *uint32 { return &n }

func cmd(name string, actions ...action.Action) action.Entry {
	return action.Entry{Kind: action.EntryCommand, Command: action.Command{Name: name, Actions: actions}}
}

// TestAbstractRepeatScenarioS3 reproduces scenario S3: a chain whose
// simplified form is key("x"), repeat(2) should mint an abstract candidate
// named with a trailing <number_small_1> capture and words_saved = 2.
func TestAbstractRepeatScenarioS3(t *testing.T) {
	rec := action.Record{
		cmd("type x three times",
			action.New("key", action.StringArg("x")),
			action.New("key", action.StringArg("x")),
			action.New("key", action.StringArg("x")),
		),
	}

	g := NewGenerator(20, zerolog.Nop())
	g.walkChainsFrom(rec, 0)

	var abstractRepeat *Candidate
	for _, key := range g.order {
		c := g.byKey[key]
		if c.Kind == Abstract && c.Name == "type x three times <number_small_1>" {
			abstractRepeat = c
		}
	}
	require.NotNil(t, abstractRepeat)
	assert.Equal(t, 1, abstractRepeat.UsageCount)
	assert.Equal(t, 2, abstractRepeat.WordsSavedAccumulator)
	require.Len(t, abstractRepeat.Actions, 2)
	assert.Equal(t, "repeat", abstractRepeat.Actions[1].Name)
	assert.Equal(t, action.ArgCapture, abstractRepeat.Actions[1].Arguments[0].Kind)
	assert.Equal(t, " - 1", abstractRepeat.Actions[1].Arguments[0].CaptureVal.Postfix)
}

func TestNonOverlapInvariant(t *testing.T) {
	c := newCandidate(Concrete, "x", []action.Action{action.NewInsert("a")})
	assert.True(t, c.processUsage(3, 2))
	assert.False(t, c.processUsage(3, 2), "same ending index must not double count")
	assert.False(t, c.processUsage(2, 2), "earlier ending index must not count")
	assert.True(t, c.processUsage(4, 2))
	assert.Equal(t, 2, c.UsageCount)
	assert.Equal(t, 4, c.TotalWords)
}

func TestGenerateStopsAtRecordingStart(t *testing.T) {
	rec := action.Record{
		cmd("one", action.NewInsert("a")),
		{Kind: action.EntryRecordingStart},
		cmd("two", action.NewInsert("b")),
	}
	g := NewGenerator(20, zerolog.Nop())
	_ = g.Generate(rec)
	// chain starting at index 0 must not have been able to extend past the
	// RecordingStart at index 1.
	for _, key := range g.order {
		c := g.byKey[key]
		if c.Kind == Concrete && c.Name == "one two" {
			t.Fatal("chain crossed a RecordingStart boundary")
		}
	}
}

func TestGenerateStopsAtLargeTimeGap(t *testing.T) {
	rec := action.Record{
		cmd("one", action.NewInsert("a")),
		{Kind: action.EntryCommand, Command: action.Command{Name: "two", Actions: []action.Action{action.NewInsert("b")}, SecondsSinceLast: seconds(301)}},
	}
	g := NewGenerator(20, zerolog.Nop())
	g.Generate(rec)
	for _, key := range g.order {
		c := g.byKey[key]
		if c.Kind == Concrete && c.Name == "one two" {
			t.Fatal("chain crossed a >300s time gap")
		}
	}
}

func TestWordsSavedTruncatesAverageBeforeSubtracting(t *testing.T) {
	c := newCandidate(Concrete, "x", []action.Action{action.NewInsert("a")})
	c.processUsage(0, 5)
	c.processUsage(1, 2) // average = 3.5, truncated to 3
	assert.Equal(t, 2, c.UsageCount)
	assert.Equal(t, 4, c.WordsSaved()) // 2 * (3 - 1)
}
