package selector

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictrec/pkg/candidate"
	"dictrec/pkg/scoring"
)

func TestRunReturnsKDistinctCandidates(t *testing.T) {
	pool := sixInsertCandidates()
	got := Run(context.Background(), pool, nil, 3, 20, 2, 99, nil, zerolog.Nop())
	require.Len(t, got, 3)
	seen := make(map[*candidate.Candidate]bool)
	for _, c := range got {
		assert.False(t, seen[c])
		seen[c] = true
	}
}

func TestRunPinsStartSet(t *testing.T) {
	pool := sixInsertCandidates()
	start := []*candidate.Candidate{pool[4]}
	got := Run(context.Background(), pool, start, 3, 20, 2, 99, nil, zerolog.Nop())
	require.Len(t, got, 3)
	assert.Contains(t, got, pool[4])
}

func TestRunMatchesOrBeatsPlainGreedy(t *testing.T) {
	pool := sixInsertCandidates()
	got := Run(context.Background(), pool, nil, 2, 20, 2, 1, nil, zerolog.Nop())
	greedyOnly := Greedy(pool, nil, 2, 2, zerolog.Nop())

	runScore := scoring.Score(got)
	greedyScore := scoring.Score(indexSubset(pool, greedyOnly))
	assert.GreaterOrEqual(t, runScore, greedyScore-1e-9)
}

func TestRunRespectsCancellation(t *testing.T) {
	pool := sixInsertCandidates()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := Run(ctx, pool, nil, 3, 20, 2, 1, nil, zerolog.Nop())
	assert.LessOrEqual(t, len(got), 3)
}
