// Package simplify canonicalises a command chain's action list by fusing
// adjacent inserts into one and collapsing runs of identical consecutive
// actions into a repeat count, in that order.
package simplify

import (
	"fmt"

	"dictrec/pkg/action"
)

// repeatAction builds a repeat(n) action.
func repeatAction(n int) action.Action {
	return action.New("repeat", action.IntArg(int32(n)))
}

// fuseInserts walks actions left to right, merging the text of any run of
// adjacent insert actions into a single insert, and leaves every other
// action untouched, in order.
func fuseInserts(actions []action.Action) []action.Action {
	out := make([]action.Action, 0, len(actions))
	var buf string
	haveBuf := false
	flush := func() {
		if haveBuf {
			out = append(out, action.NewInsert(buf))
			buf = ""
			haveBuf = false
		}
	}
	for _, a := range actions {
		if a.IsInsert() {
			buf += a.InsertText()
			haveBuf = true
			continue
		}
		flush()
		out = append(out, a)
	}
	flush()
	return out
}

// fuseRepeats walks actions left to right; whenever an action structurally
// equals the immediately preceding non-repeat action, it increments a
// counter instead of re-emitting it, flushing a repeat(n) action (n =
// occurrences beyond the first) right after the unique action once the run
// ends.
func fuseRepeats(actions []action.Action) []action.Action {
	out := make([]action.Action, 0, len(actions))
	count := 0
	flushRepeat := func() {
		if count > 0 {
			out = append(out, repeatAction(count))
			count = 0
		}
	}
	for _, a := range actions {
		if len(out) > 0 && out[len(out)-1].Equal(a) {
			count++
			continue
		}
		flushRepeat()
		out = append(out, a)
	}
	flushRepeat()
	return out
}

// Chain returns a copy of c with its action list simplified: insert fusion
// runs first, then repeat fusion, per the canonicalisation order required
// for candidate-key stability. Name, start index, and size are preserved.
func Chain(c action.CommandChain) action.CommandChain {
	simplified := fuseRepeats(fuseInserts(c.Actions))
	return c.WithActions(simplified)
}

// Idempotent is a sanity helper used by tests to assert simplify(simplify(c))
// == simplify(c), one of the system's quantified invariants.
func Idempotent(c action.CommandChain) error {
	once := Chain(c)
	twice := Chain(once)
	if !action.ActionsEqual(once.Actions, twice.Actions) {
		return fmt.Errorf("simplify: not idempotent for chain %q", c.Name)
	}
	return nil
}
