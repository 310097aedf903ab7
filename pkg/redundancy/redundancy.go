// Package redundancy removes candidates that are fully dominated by a
// larger candidate used exactly as often: one whose action sequence
// already contains the smaller candidate's actions as a contiguous
// sub-list, possibly overlapping the larger candidate's first or last
// insert through substring containment rather than exact equality.
package redundancy

import (
	"strings"

	"github.com/rs/zerolog"

	"dictrec/internal/pool"
	"dictrec/pkg/action"
	"dictrec/pkg/candidate"
)

// Filter removes dominated candidates, searching per-candidate in
// parallel across a worker pool.
type Filter struct {
	log zerolog.Logger
}

// NewFilter returns a Filter that logs stage boundaries through log.
func NewFilter(log zerolog.Logger) *Filter {
	return &Filter{log: log}
}

// Apply returns the subset of cands that survive redundancy elimination,
// preserving input order. workers bounds the pool size; 0 defaults to
// detected hardware concurrency.
func (f *Filter) Apply(cands []*candidate.Candidate, workers int) []*candidate.Candidate {
	if len(cands) == 0 {
		return cands
	}

	p := pool.New[bool](workers, nil)
	for i := range cands {
		i := i
		p.Submit(func() bool { return isDominated(cands[i], cands) })
	}
	dominated := p.Join()
	p.Shutdown()

	out := make([]*candidate.Candidate, 0, len(cands))
	removed := 0
	for i, c := range cands {
		if dominated[i] {
			removed++
			continue
		}
		out = append(out, c)
	}

	f.log.Info().
		Int("candidates_in", len(cands)).
		Int("candidates_removed", removed).
		Int("candidates_out", len(out)).
		Msg("redundancy filter complete")
	return out
}

// isDominated reports whether some other candidate in all, used exactly
// as often as x, contains x's canonical action sequence.
func isDominated(x *candidate.Candidate, all []*candidate.Candidate) bool {
	for _, y := range all {
		if y == x {
			continue
		}
		if y.UsageCount != x.UsageCount {
			continue
		}
		if contains(x.Actions, y.Actions) {
			return true
		}
	}
	return false
}

// contains reports whether needle occurs as a contiguous sub-list of
// haystack, where an action aligned with haystack's very first or very
// last element may also match by having its insert text be a substring
// of that boundary element's insert text, rather than requiring exact
// equality.
func contains(needle, haystack []action.Action) bool {
	n, h := len(needle), len(haystack)
	if n == 0 || n > h {
		return false
	}
	for start := 0; start+n <= h; start++ {
		if matchesAt(needle, haystack, start) {
			return true
		}
	}
	return false
}

func matchesAt(needle, haystack []action.Action, start int) bool {
	last := len(haystack) - 1
	for j, want := range needle {
		got := haystack[start+j]
		atBoundary := start+j == 0 || start+j == last
		if atBoundary && want.IsInsert() && got.IsInsert() {
			if want.Equal(got) || strings.Contains(got.InsertText(), want.InsertText()) {
				continue
			}
			return false
		}
		if !want.Equal(got) {
			return false
		}
	}
	return true
}
