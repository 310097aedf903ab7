// Package selector picks the k candidates that maximise the heuristic
// score of pkg/scoring: a parallel forward-greedy baseline (this file) and
// a UCT-flavoured Monte Carlo tree search that refines it (mcts.go).
package selector

import (
	"runtime"
	"sort"

	"github.com/rs/zerolog"

	"dictrec/internal/pool"
	"dictrec/pkg/candidate"
	"dictrec/pkg/scoring"
)

// Greedy selects up to k candidate indexes from cands, starting from the
// pinned indexes in start (already committed, never removed). At each
// round it tries adding every remaining index, keeps the one producing
// the best score.Score, breaking ties toward the lowest index, and
// commits it. Rounds are parallelised by partitioning the remaining
// indexes across workers. workers <= 0 defaults to detected hardware
// concurrency.
func Greedy(cands []*candidate.Candidate, start []int, k, workers int, log zerolog.Logger) []int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	selectedSet := make(map[int]bool, len(start))
	selected := make([]int, 0, k)
	for _, i := range start {
		if !selectedSet[i] {
			selectedSet[i] = true
			selected = append(selected, i)
		}
	}

	for len(selected) < k {
		remaining := remainingIndices(cands, selectedSet)
		if len(remaining) == 0 {
			break
		}
		best := parallelBest(cands, selected, remaining, workers)
		selected = append(selected, best.idx)
		selectedSet[best.idx] = true
		log.Debug().
			Int("round", len(selected)).
			Int("chosen_index", best.idx).
			Float64("score", best.score).
			Msg("greedy selector committed a candidate")
	}

	sort.Ints(selected)
	return selected
}

type localBest struct {
	idx   int
	score float64
	has   bool
}

func combine(a, b localBest) localBest {
	if !b.has {
		return a
	}
	if !a.has {
		return b
	}
	if b.score > a.score || (b.score == a.score && b.idx < a.idx) {
		return b
	}
	return a
}

func parallelBest(cands []*candidate.Candidate, selected, remaining []int, workers int) localBest {
	chunks := partition(remaining, workers)

	p := pool.New[localBest](len(chunks), nil)
	for _, chunk := range chunks {
		chunk := chunk
		p.Submit(func() localBest { return bestInChunk(cands, selected, chunk) })
	}
	results := p.Join()
	p.Shutdown()

	var best localBest
	for _, r := range results {
		best = combine(best, r)
	}
	return best
}

func bestInChunk(cands []*candidate.Candidate, selected, chunk []int) localBest {
	var best localBest
	for _, idx := range chunk {
		trial := withExtra(cands, selected, idx)
		best = combine(best, localBest{idx: idx, score: scoring.Score(trial), has: true})
	}
	return best
}

func withExtra(cands []*candidate.Candidate, selected []int, extra int) []*candidate.Candidate {
	out := make([]*candidate.Candidate, 0, len(selected)+1)
	for _, i := range selected {
		out = append(out, cands[i])
	}
	return append(out, cands[extra])
}

func remainingIndices(cands []*candidate.Candidate, selectedSet map[int]bool) []int {
	out := make([]int, 0, len(cands))
	for i := range cands {
		if !selectedSet[i] {
			out = append(out, i)
		}
	}
	return out
}

// partition splits items into at most workers contiguous-by-stride
// chunks, round-robin, so each worker's share is roughly even.
func partition(items []int, workers int) [][]int {
	if workers > len(items) {
		workers = len(items)
	}
	if workers <= 0 {
		workers = 1
	}
	chunks := make([][]int, workers)
	for i, v := range items {
		w := i % workers
		chunks[w] = append(chunks[w], v)
	}
	out := chunks[:0]
	for _, c := range chunks {
		if len(c) > 0 {
			out = append(out, c)
		}
	}
	return out
}
