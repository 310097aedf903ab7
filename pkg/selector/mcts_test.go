package selector

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictrec/pkg/candidate"
)


func sixInsertCandidates() []*candidate.Candidate {
	return []*candidate.Candidate{
		insertCandidate("A", "A", 20000),
		insertCandidate("B", "B", 1000),
		insertCandidate("C", "C", 400),
		insertCandidate("D", "D", 300),
		insertCandidate("E", "E", 200),
		insertCandidate("F", "F", 100),
	}
}

func TestMCTSReturnsValidSizeKSubset(t *testing.T) {
	pool := sixInsertCandidates()
	got := MCTS(pool, nil, 3, 2, 20, 42, nil, zerolog.Nop())
	require.Len(t, got, 3)
	seen := make(map[int]bool)
	for _, idx := range got {
		assert.False(t, seen[idx], "indexes must be distinct")
		seen[idx] = true
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(pool))
	}
	assert.True(t, sort.IntsAreSorted(got))
}

func TestMCTSIsDeterministicForFixedSeedAndWorkerCount(t *testing.T) {
	pool := sixInsertCandidates()[:5]
	a := MCTS(pool, nil, 2, 1, 20, 7, nil, zerolog.Nop())
	b := MCTS(pool, nil, 2, 1, 20, 7, nil, zerolog.Nop())
	assert.Equal(t, a, b)
}

func TestMCTSHonoursFixedPrefix(t *testing.T) {
	pool := sixInsertCandidates()[:3]
	got := MCTS(pool, []int{1}, 2, 1, 10, 1, nil, zerolog.Nop())
	require.Len(t, got, 2)
	assert.Contains(t, got, 1)
}

func TestMCTSWithPrefixAlreadyCompleteReturnsItSorted(t *testing.T) {
	pool := sixInsertCandidates()[:2]
	got := MCTS(pool, []int{1, 0}, 2, 1, 10, 1, nil, zerolog.Nop())
	assert.Equal(t, []int{0, 1}, got)
}
