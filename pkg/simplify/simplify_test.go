package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictrec/pkg/action"
)

// TestSimplifyScenarioS1 reproduces scenario S1: insert("foo"), insert("bar"),
// key("a"), key("a"), key("a"), insert("x") -> insert("foobar"), key("a"),
// repeat(2), insert("x").
func TestSimplifyScenarioS1(t *testing.T) {
	chain := action.CommandChain{
		Name: "s1",
		Actions: []action.Action{
			action.NewInsert("foo"),
			action.NewInsert("bar"),
			action.New("key", action.StringArg("a")),
			action.New("key", action.StringArg("a")),
			action.New("key", action.StringArg("a")),
			action.NewInsert("x"),
		},
		StartIndex: 0,
		Size:       1,
	}

	got := Chain(chain)
	want := []action.Action{
		action.NewInsert("foobar"),
		action.New("key", action.StringArg("a")),
		repeatAction(2),
		action.NewInsert("x"),
	}
	require.Len(t, got.Actions, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got.Actions[i]), "index %d: got %v want %v", i, got.Actions[i], want[i])
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	chain := action.CommandChain{
		Name: "x",
		Actions: []action.Action{
			action.NewInsert("a"),
			action.NewInsert("b"),
			action.New("key", action.StringArg("z")),
			action.New("key", action.StringArg("z")),
		},
	}
	assert.NoError(t, Idempotent(chain))
}

func TestSimplifyNoChangeNeeded(t *testing.T) {
	chain := action.CommandChain{
		Name: "x",
		Actions: []action.Action{
			action.New("key", action.StringArg("a")),
			action.New("key", action.StringArg("b")),
		},
	}
	got := Chain(chain)
	assert.True(t, action.ActionsEqual(chain.Actions, got.Actions))
}

func TestSimplifyPreservesChainIdentity(t *testing.T) {
	chain := action.CommandChain{Name: "name", StartIndex: 7, Size: 3, Actions: []action.Action{action.NewInsert("a")}}
	got := Chain(chain)
	assert.Equal(t, chain.Name, got.Name)
	assert.Equal(t, chain.StartIndex, got.StartIndex)
	assert.Equal(t, chain.Size, got.Size)
}
