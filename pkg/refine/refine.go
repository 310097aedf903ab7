package refine

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"dictrec/pkg/action"
	"dictrec/pkg/candidate"
	"dictrec/pkg/config"
	"dictrec/pkg/selector"
	"dictrec/pkg/telemetry"
)

// Params bundles the selector parameters the driver needs on every
// re-invocation of selection.
type Params struct {
	K            int
	TrialsBudget int
	Workers      int
	BaseSeed     uint64
}

// Driver runs the interactive refinement loop described for the
// recommendation selector: repeatedly select a batch of k candidates,
// prompt about each one not yet committed, apply the resulting directives,
// and re-select against the narrowed candidate pool until a round commits
// without any removals.
type Driver struct {
	in      *bufio.Scanner
	out     io.Writer
	cfg     *config.Store
	metrics *telemetry.Metrics
	log     zerolog.Logger
}

// New builds a Driver reading prompts from in and writing them to out.
// metrics may be nil, in which case selection runs unobserved.
func New(in io.Reader, out io.Writer, cfg *config.Store, metrics *telemetry.Metrics, log zerolog.Logger) *Driver {
	return &Driver{in: bufio.NewScanner(in), out: out, cfg: cfg, metrics: metrics, log: log}
}

// Run executes the refinement loop against pool and returns the final set
// of accepted candidates, in the order they were committed. Every
// persistently-rejected action and command accumulated along the way is
// appended to the configuration store before returning.
func (d *Driver) Run(ctx context.Context, pool []*candidate.Candidate, params Params) []*candidate.Candidate {
	filtered := append([]*candidate.Candidate(nil), pool...)
	var accepted []*candidate.Candidate
	toKeep := action.NewSet()
	toRemove := action.NewSet()
	sessionRejectedActions := action.NewSet()

	var persistRejectActions []action.Action
	var persistRejectCommands [][]action.Action

	acceptRestOfBatch := false

	for {
		startIdx := indicesOf(filtered, accepted)
		batch := selector.Run(ctx, filtered, subset(filtered, startIdx), params.K, params.TrialsBudget, params.Workers, params.BaseSeed, d.metrics, d.log)

		removedAny := false
		for _, c := range batch {
			if toKeep.Contains(c.Actions) {
				continue
			}

			var dir Directive
			if acceptRestOfBatch {
				dir = Directive{Accept: true}
			} else {
				var err error
				dir, err = d.promptFor(c)
				if err != nil {
					fmt.Fprintf(d.out, "%v\n", err)
					continue
				}
			}

			if dir.AcceptRestOfBatch {
				acceptRestOfBatch = true
				if !dir.Reject {
					dir.Accept = true
				}
			}

			if dir.ActionToRejectPersist > 0 {
				if a, ok := actionAt(c, dir.ActionToRejectPersist); ok {
					persistRejectActions = append(persistRejectActions, a)
					sessionRejectedActions.AddAction(a)
				}
			}
			if dir.ActionToReject > 0 {
				if a, ok := actionAt(c, dir.ActionToReject); ok {
					sessionRejectedActions.AddAction(a)
				}
			}
			if dir.RejectCommandPersistent {
				persistRejectCommands = append(persistRejectCommands, c.Actions)
				toRemove.Add(c.Actions)
				removedAny = true
				continue
			}

			switch {
			case dir.Accept:
				toKeep.Add(c.Actions)
				accepted = append(accepted, c)
			case dir.Reject:
				toRemove.Add(c.Actions)
				removedAny = true
			}
		}

		filtered = narrow(filtered, toKeep, toRemove, sessionRejectedActions, persistRejectCommands)
		if !removedAny {
			break
		}
	}

	if d.cfg != nil {
		d.cfg.AppendRejectedActions(persistRejectActions)
		d.cfg.AppendRejectedCommands(persistRejectCommands)
	}
	return accepted
}

// promptFor writes the candidate's summary and blocks for one line of
// input, re-prompting on a parse error (the local-retry policy for
// user-input errors).
func (d *Driver) promptFor(c *candidate.Candidate) (Directive, error) {
	for {
		fmt.Fprintf(d.out, "\nCandidate %q (used %d times, saves %d words):\n", c.Name, c.UsageCount, c.WordsSaved())
		for i, a := range c.Actions {
			fmt.Fprintf(d.out, "  %d. %s\n", i+1, a.ScriptString())
		}
		fmt.Fprint(d.out, "[y/n/c/a/r N/d N]: ")

		if !d.in.Scan() {
			return Directive{Reject: true}, nil
		}
		dir, err := ParseDirective(d.in.Text())
		if err == nil {
			return dir, nil
		}
		fmt.Fprintf(d.out, "%v\n", err)
	}
}

func actionAt(c *candidate.Candidate, oneBased int) (action.Action, bool) {
	idx := oneBased - 1
	if idx < 0 || idx >= len(c.Actions) {
		return action.Action{}, false
	}
	return c.Actions[idx], true
}

// narrow drops every candidate that was committed-rejected this session,
// contains a session/persistently rejected action, or matches a
// persistently rejected command sequence; committed-accepted candidates
// always survive.
func narrow(pool []*candidate.Candidate, toKeep, toRemove, rejectedActions *action.Set, rejectedCommands [][]action.Action) []*candidate.Candidate {
	out := pool[:0]
	for _, c := range pool {
		if toKeep.Contains(c.Actions) {
			out = append(out, c)
			continue
		}
		if toRemove.Contains(c.Actions) {
			continue
		}
		if rejectedActions.ContainsAny(c.Actions) {
			continue
		}
		if containsSequence(rejectedCommands, c.Actions) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsSequence(sequences [][]action.Action, actions []action.Action) bool {
	key := action.CanonicalActions(actions)
	for _, seq := range sequences {
		if action.CanonicalActions(seq) == key {
			return true
		}
	}
	return false
}

func indicesOf(pool []*candidate.Candidate, accepted []*candidate.Candidate) []int {
	pos := make(map[*candidate.Candidate]int, len(pool))
	for i, c := range pool {
		pos[c] = i
	}
	var out []int
	for _, c := range accepted {
		if idx, ok := pos[c]; ok {
			out = append(out, idx)
		}
	}
	return out
}

func subset(pool []*candidate.Candidate, idx []int) []*candidate.Candidate {
	out := make([]*candidate.Candidate, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
