package selector

import (
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

// exploreConstant is the UCT exploration weight. It is kept tiny because
// this variant's selection is meant to be exploitation-dominated.
const exploreConstant = 1e-6

// rolloutsPerExploration is how many independent greedy rollouts a trial
// runs once it reaches a node created by expansion and not yet revisited,
// with at least one slot left to fill. Each rollout counts as one visit:
// every node on the trial's path gains rolloutsPerExploration visits and
// the sum of the rollout scores.
const rolloutsPerExploration = 10

// mctsNode is one prefix-of-chosen-indexes node in the search tree. sum/n
// accumulate the score estimate of every trial that ever visited it.
type mctsNode struct {
	sum      float64
	n        int
	children map[int]*mctsNode
}

func (nd *mctsNode) score() float64 {
	if nd.n == 0 {
		return 0
	}
	return nd.sum / float64(nd.n)
}

// tree runs MCTS trials, single-threaded, over the legal completions of a
// fixed prefix. Each worker in MCTS owns one tree exclusively.
type tree struct {
	cands         []*candidate.Candidate
	fixed         []int // already-committed prefix, outside this tree
	k             int   // total target subset size
	n             int   // number of candidates
	root          *mctsNode
	rng           *dictrng.Generator
	greedyWorkers int
	metrics       *telemetry.Metrics

	bestScore float64
	bestSet   []int
	hasBest   bool
}

func newTree(cands []*candidate.Candidate, fixed []int, k int, seed uint64, greedyWorkers int, metrics *telemetry.Metrics) *tree {
	return &tree{
		cands:         cands,
		fixed:         fixed,
		k:             k,
		n:             len(cands),
		root:          &mctsNode{},
		rng:           dictrng.New(seed),
		greedyWorkers: greedyWorkers,
		metrics:       metrics,
	}
}

func lastFixed(fixed []int) int {
	if len(fixed) == 0 {
		return -1
	}
	return fixed[len(fixed)-1]
}

// remainingSlots returns how many more indexes this tree must choose.
func (tr *tree) remainingSlots() int {
	return tr.k - len(tr.fixed)
}

// legalRange returns the inclusive [lo, hi] range of legal absolute
// candidate indexes for the childDepth-th tree choice (1-indexed), given
// the previously chosen absolute index prevIdx (or -1 at the root).
func (tr *tree) legalRange(prevIdx, childDepth int) (lo, hi int) {
	K := tr.remainingSlots()
	lo = prevIdx + 1
	hi = tr.n - (K - childDepth) - 1
	return lo, hi
}

// runTrials executes count independent trials against tr's shared tree.
func (tr *tree) runTrials(count int) {
	for i := 0; i < count; i++ {
		tr.trial()
	}
}

// trial walks from the root, expanding the first unexpanded node it
// meets, then either terminates the subset (one visit with that subset's
// score) or runs the greedy-rollout phase from the newly reached node (one
// visit per rollout with the sum of their scores), backpropagating that to
// every node on the path.
func (tr *tree) trial() {
	K := tr.remainingSlots()
	if K <= 0 {
		return
	}

	path := []*mctsNode{tr.root}
	chosen := make([]int, 0, K)
	node := tr.root
	lastIdx := lastFixed(tr.fixed)
	d := 0

	for {
		if node.children == nil {
			tr.expand(node, d, lastIdx, chosen)
		}
		childIdx := tr.selectUCT(node)
		child := node.children[childIdx]
		chosen = append(chosen, childIdx)
		path = append(path, child)
		lastIdx = childIdx
		d++

		if d == K {
			score := tr.scoreSubset(chosen)
			tr.considerBest(chosen, score)
			tr.backprop(path, score, 1)
			return
		}
		if child.children == nil && child.n <= 1 {
			total := tr.greedyRolloutPhase(d, lastIdx, chosen)
			tr.backprop(path, total, rolloutsPerExploration)
			return
		}
		node = child
	}
}

// backprop adds sum to the score total and visits to the visit count of
// every node on path.
func (tr *tree) backprop(path []*mctsNode, sum float64, visits int) {
	for _, nd := range path {
		nd.sum += sum
		nd.n += visits
	}
}

// expand enumerates every legal child index at depth d+1 and seeds each
// with exactly one non-greedy rollout.
func (tr *tree) expand(node *mctsNode, d, lastIdx int, chosen []int) {
	lo, hi := tr.legalRange(lastIdx, d+1)
	node.children = make(map[int]*mctsNode, max0(hi-lo+1))
	for j := lo; j <= hi; j++ {
		childPath := append(append([]int(nil), chosen...), j)
		score := tr.nonGreedyRollout(d+1, j, childPath)
		node.children[j] = &mctsNode{sum: score, n: 1}
		tr.considerBest(childPath, score)
	}
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// nonGreedyRollout samples the remaining slots uniformly at random and
// scores the resulting complete subset.
func (tr *tree) nonGreedyRollout(d, lastIdx int, chosen []int) float64 {
	tr.metrics.RolloutPerformed()
	K := tr.remainingSlots()
	remaining := K - d
	sample := tr.sampleAscending(lastIdx+1, tr.n, remaining)
	full := append(append([]int(nil), chosen...), sample...)
	return tr.scoreSubset(full)
}

// greedyRolloutPhase runs rolloutsPerExploration independent greedy
// rollouts from the node reached after choosing lastIdx at depth d, and
// returns the sum of their scores.
func (tr *tree) greedyRolloutPhase(d, lastIdx int, chosen []int) float64 {
	K := tr.remainingSlots()
	total := 0.0
	for i := 0; i < rolloutsPerExploration; i++ {
		score, full := tr.greedyRollout(d, lastIdx, chosen, K)
		tr.considerBest(full, score)
		total += score
	}
	return total
}

// greedyRollout samples K-d-1 random indexes, then invokes the greedy
// selector over the remainder to pick the final slot.
func (tr *tree) greedyRollout(d, lastIdx int, chosen []int, K int) (float64, []int) {
	tr.metrics.RolloutPerformed()
	toSample := K - d - 1
	sample := tr.sampleAscending(lastIdx+1, tr.n, toSample)
	partial := append(append(append([]int(nil), tr.fixed...), chosen...), sample...)
	full := Greedy(tr.cands, partial, tr.k, tr.greedyWorkers, zerolog.Nop())
	return scoring.Score(indexSubset(tr.cands, full)), full
}

// scoreSubset scores the complete subset formed by tr.fixed plus a local
// (tree-relative) path of chosen indexes.
func (tr *tree) scoreSubset(localPath []int) float64 {
	full := append(append([]int(nil), tr.fixed...), localPath...)
	return scoring.Score(indexSubset(tr.cands, full))
}

func (tr *tree) considerBest(localPath []int, score float64) {
	if tr.hasBest && score <= tr.bestScore {
		return
	}
	full := append(append([]int(nil), tr.fixed...), localPath...)
	sort.Ints(full)
	tr.bestScore = score
	tr.bestSet = full
	tr.hasBest = true
}

func indexSubset(cands []*candidate.Candidate, idx []int) []*candidate.Candidate {
	out := make([]*candidate.Candidate, len(idx))
	for i, j := range idx {
		out[i] = cands[j]
	}
	return out
}

// selectUCT picks the child maximising the UCT score, breaking ties
// toward the lowest candidate index.
func (tr *tree) selectUCT(node *mctsNode) int {
	sstar := 0.0
	for _, c := range node.children {
		if s := c.score(); s > sstar {
			sstar = s
		}
	}
	nParent := node.n
	if nParent < 1 {
		nParent = 1
	}
	logParent := math.Log(float64(nParent))

	keys := make([]int, 0, len(node.children))
	for j := range node.children {
		keys = append(keys, j)
	}
	sort.Ints(keys)

	best := -1
	bestUCT := math.Inf(-1)
	for _, j := range keys {
		c := node.children[j]
		var ratio float64
		if sstar > 0 {
			ratio = c.score() / sstar
		}
		explore := exploreConstant * math.Sqrt(logParent/float64(c.n))
		uct := ratio + explore
		if uct > bestUCT {
			bestUCT = uct
			best = j
		}
	}
	return best
}

// sampleAscending draws count distinct integers from [lo, hi) uniformly
// at random, via partial Fisher-Yates over the index pool, and returns
// them in ascending order.
func (tr *tree) sampleAscending(lo, hi, count int) []int {
	if count <= 0 {
		return nil
	}
	span := hi - lo
	pool := make([]int, span)
	for i := range pool {
		pool[i] = lo + i
	}
	for i := 0; i < count; i++ {
		j := i + tr.rng.NextInRange(0, span-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	chosen := append([]int(nil), pool[:count]...)
	sort.Ints(chosen)
	return chosen
}

// MCTS runs a parallel UCT search completing the fixed prefix to a subset
// of size k, spawning W workers (clamped hardware concurrency), each with
// an independent tree and RNG seed derived from baseSeed. It returns the
// best subset (sorted ascending) found across all workers.
func MCTS(cands []*candidate.Candidate, fixed []int, k, workers, trials int, baseSeed uint64, metrics *telemetry.Metrics, log zerolog.Logger) []int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if len(fixed) >= k {
		out := append([]int(nil), fixed...)
		sort.Ints(out)
		return out
	}

	perWorker := int(math.Round(1.7 * float64(trials) / float64(workers)))
	if workers > 1 && perWorker < 10 {
		perWorker = 10
	}
	if perWorker < 1 {
		perWorker = 1
	}

	seeder := dictrng.New(0)
	currentSeed := baseSeed
	type workerResult struct {
		bestScore float64
		bestSet   []int
		hasBest   bool
	}

	p := pool.New[workerResult](workers, nil)
	for w := 0; w < workers; w++ {
		currentSeed += uint64(seeder.NextInRange(1, 10000))
		workerSeed := currentSeed
		p.Submit(func() workerResult {
			t := newTree(cands, fixed, k, workerSeed, workers, metrics)
			t.runTrials(perWorker)
			return workerResult{bestScore: t.bestScore, bestSet: t.bestSet, hasBest: t.hasBest}
		})
	}
	results := p.Join()
	p.Shutdown()

	var best workerResult
	for _, r := range results {
		if r.hasBest && (!best.hasBest || r.bestScore > best.bestScore) {
			best = r
		}
	}

	log.Debug().
		Int("workers", workers).
		Int("trials_per_worker", perWorker).
		Float64("best_score", best.bestScore).
		Msg("mcts search complete")

	if !best.hasBest {
		out := append([]int(nil), fixed...)
		sort.Ints(out)
		return out
	}
	return best.bestSet
}
