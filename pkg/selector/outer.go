package selector

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/rs/zerolog"

	"dictrec/internal/dictrng"
	"dictrec/internal/pool"
	"dictrec/pkg/candidate"
	"dictrec/pkg/scoring"
	"dictrec/pkg/telemetry"
)

// Run performs the iterative-refinement outer loop: starting from
// startSet (already-committed candidates, pinned in every round),
// it fills remaining slots up to k one at a time, alternating a parallel
// MCTS search with a deterministic double-greedy sweep on the final
// slot-before-last round, and always checking whether a one-shot greedy
// completion beats whichever of those produced for this round.
//
// The optional score-improvement pre-filter named in the design notes
// (skip candidates that would not improve the current score before
// searching) is not applied here: it only prunes the search space and
// changes no committed outcome, so it is left out in favour of always
// searching the full remaining candidate array - see the design ledger.
func Run(
	ctx context.Context,
	cands []*candidate.Candidate,
	startSet []*candidate.Candidate,
	k, trialsBudget, workers int,
	baseSeed uint64,
	metrics *telemetry.Metrics,
	log zerolog.Logger,
) []*candidate.Candidate {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sorted := sortedByWordsSavedDesc(cands)
	if k > len(sorted) {
		k = len(sorted)
	}

	selected := indicesOf(sorted, startSet)
	seeder := dictrng.New(0)
	currentSeed := baseSeed

	for i := len(selected); i <= k-2; i++ {
		select {
		case <-ctx.Done():
			log.Warn().Msg("selection cancelled before convergence")
			return indexSubset(sorted, selected)
		default:
		}

		var candidateCompletion []int
		if i == k-2 {
			candidateCompletion = doubleGreedy(sorted, selected, k, workers, log)
		} else {
			roundTrials := trialsBudget
			if k > 0 {
				roundTrials = int(math.Round(float64(len(sorted)) / float64(k)))
			}
			currentSeed += uint64(seeder.NextInRange(1, 10000))
			candidateCompletion = MCTS(sorted, selected, k, workers, roundTrials, currentSeed, metrics, log)
		}

		greedyCompletion := Greedy(sorted, selected, k, workers, log)

		best := candidateCompletion
		if scoring.Score(indexSubset(sorted, greedyCompletion)) > scoring.Score(indexSubset(sorted, best)) {
			best = greedyCompletion
		}

		next := smallestNew(best, selected)
		selected = append(selected, next)
		sort.Ints(selected)

		roundScore := scoring.Score(indexSubset(sorted, selected))
		metrics.RoundCompleted(roundScore)

		log.Info().
			Int("position", i).
			Int("chosen_index", next).
			Float64("score", roundScore).
			Msg("selection round committed")
	}

	if len(selected) < k {
		selected = Greedy(sorted, selected, k, workers, log)
	}
	return indexSubset(sorted, selected)
}

// doubleGreedy tries every legal candidate for the next slot, completes
// the remainder with the greedy selector, and keeps the full completion
// scoring highest.
func doubleGreedy(sorted []*candidate.Candidate, selected []int, k, workers int, log zerolog.Logger) []int {
	selectedSet := make(map[int]bool, len(selected))
	for _, i := range selected {
		selectedSet[i] = true
	}

	type trial struct {
		full  []int
		score float64
		has   bool
	}

	p := pool.New[trial](workers, nil)
	submitted := 0
	for j := range sorted {
		if selectedSet[j] {
			continue
		}
		j := j
		p.Submit(func() trial {
			prefix := append(append([]int(nil), selected...), j)
			full := Greedy(sorted, prefix, k, workers, log)
			return trial{full: full, score: scoring.Score(indexSubset(sorted, full)), has: true}
		})
		submitted++
	}
	if submitted == 0 {
		p.Shutdown()
		return append([]int(nil), selected...)
	}
	results := p.Join()
	p.Shutdown()

	var best trial
	for _, r := range results {
		if r.has && (!best.has || r.score > best.score) {
			best = r
		}
	}
	return best.full
}

func sortedByWordsSavedDesc(cands []*candidate.Candidate) []*candidate.Candidate {
	out := append([]*candidate.Candidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WordsSaved() > out[j].WordsSaved()
	})
	return out
}

func indicesOf(sorted []*candidate.Candidate, subset []*candidate.Candidate) []int {
	pos := make(map[*candidate.Candidate]int, len(sorted))
	for i, c := range sorted {
		pos[c] = i
	}
	out := make([]int, 0, len(subset))
	seen := make(map[int]bool, len(subset))
	for _, c := range subset {
		if idx, ok := pos[c]; ok && !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

func smallestNew(full, selected []int) int {
	already := make(map[int]bool, len(selected))
	for _, i := range selected {
		already[i] = true
	}
	best := -1
	for _, j := range full {
		if already[j] {
			continue
		}
		if best == -1 || j < best {
			best = j
		}
	}
	return best
}
