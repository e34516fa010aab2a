package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestIndex(t *testing.T, docs [][]string) *LexicalIndex {
	t.Helper()
	if err := ProbeFTS5(context.Background()); err != nil {
		t.Skipf("fts5 unavailable in this build: %v", err)
	}

	idx, err := NewLexicalIndex(context.Background(), docs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestProbeFTS5(t *testing.T) {
	err := ProbeFTS5(context.Background())
	if BuildMode == "purego" {
		assert.NoError(t, err, "modernc sqlite ships fts5")
		return
	}
	if err != nil {
		assert.ErrorIs(t, err, ErrFTS5Unavailable)
	}
}

func TestLexicalScores(t *testing.T) {
	idx := setupTestIndex(t, [][]string{
		{"pool", "hours", "when", "is", "the", "pool", "open"},
		{"check", "in", "time"},
		{"late", "check", "out"},
	})

	assert.Equal(t, 3, idx.Len())

	scores, err := idx.Scores(context.Background(), []string{"pool", "open"})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Greater(t, scores[0], 0.0)
	assert.Equal(t, 0.0, scores[1])
	assert.Equal(t, 0.0, scores[2])

	scores, err = idx.Scores(context.Background(), []string{"check", "in"})
	require.NoError(t, err)
	assert.Greater(t, scores[1], scores[2], "matching both terms ranks higher")
	assert.Greater(t, scores[2], 0.0)
}

func TestLexicalScoresNoTokens(t *testing.T) {
	idx := setupTestIndex(t, [][]string{{"pool"}})

	scores, err := idx.Scores(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, scores)
}

func TestLexicalScoresReservedWords(t *testing.T) {
	idx := setupTestIndex(t, [][]string{{"bed", "and", "breakfast"}, {"or", "not"}})

	// FTS5 operators must be matched as plain terms
	scores, err := idx.Scores(context.Background(), []string{"and", "or", "not", "near"})
	require.NoError(t, err)
	assert.Greater(t, scores[0], 0.0)
	assert.Greater(t, scores[1], 0.0)
}

func TestLexicalIndexesAreIsolated(t *testing.T) {
	a := setupTestIndex(t, [][]string{{"pool"}})
	b := setupTestIndex(t, [][]string{{"gym"}, {"spa"}})

	scores, err := a.Scores(context.Background(), []string{"gym"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, scores)

	scores, err = b.Scores(context.Background(), []string{"gym"})
	require.NoError(t, err)
	assert.Greater(t, scores[0], 0.0)
}

func TestLexicalConcurrentScores(t *testing.T) {
	idx := setupTestIndex(t, [][]string{{"pool", "hours"}, {"gym", "hours"}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scores, err := idx.Scores(context.Background(), []string{"hours"})
			assert.NoError(t, err)
			assert.Len(t, scores, 2)
		}()
	}
	wg.Wait()
}

func TestLexicalClose(t *testing.T) {
	idx := setupTestIndex(t, [][]string{{"pool"}})
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())

	_, err := idx.Scores(context.Background(), []string{"pool"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBuildMatchExpr(t *testing.T) {
	assert.Equal(t, `"pool" OR "hours"`, buildMatchExpr([]string{"pool", "hours", "pool"}))
	assert.Equal(t, "", buildMatchExpr([]string{" ", ""}))
}
