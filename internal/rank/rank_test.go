// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// stubEngine returns canned vectors: one fixed vector for the query
// text and per-text vectors for everything else.
type stubEngine struct {
	queryText string
	queryVec  []float32
	vectors   map[string][]float32
	batches   [][]string
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Embed(_ context.Context, text string) ([]float32, error) {
	if text == s.queryText {
		return s.queryVec, nil
	}
	return s.vectors[text], nil
}

func (s *stubEngine) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.batches = append(s.batches, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			v = []float32{0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func pubText(title, abstract string) string {
	return "Title: " + title + "\nAbstract: " + abstract
}

func testAuthors() []types.AuthorProfile {
	return []types.AuthorProfile{
		{
			Name:    "Ada Lovelace",
			Summary: "summary A",
			Publications: []types.Publication{
				{Title: "P1", Abstract: "a1"},
				{Title: "P2", Abstract: "a2"},
			},
		},
		{
			Name:    "Grace Hopper",
			Summary: "summary B",
			Publications: []types.Publication{
				{Title: "P3", Abstract: "a3"},
			},
		},
		{
			Name:    "Alan Turing",
			Summary: "summary C",
			// No publications: ranks with the zero centroid.
		},
	}
}

func testQuery() types.Query {
	return types.Query{Title: "X", Abstract: "Y"}
}

func aggregateStub() *stubEngine {
	return &stubEngine{
		queryText: testQuery().EmbeddingText(),
		queryVec:  []float32{1, 0},
		vectors: map[string][]float32{
			// Ada's centroid is (1, 0.5)/|..| direction; closer to the
			// query than Grace's orthogonal vector.
			pubText("P1", "a1"): {1, 0},
			pubText("P2", "a2"): {1, 1},
			pubText("P3", "a3"): {0, 1},
		},
	}
}

func TestRank_AggregateMode(t *testing.T) {
	engine := aggregateStub()
	ranked, err := Rank(context.Background(), engine, testQuery(), testAuthors(), types.ModeAggregate)
	require.NoError(t, err)

	// One entry per author, scores within [-1, 1].
	require.Len(t, ranked, 3)
	seen := map[int]bool{}
	for _, c := range ranked {
		assert.False(t, seen[c.AuthorID], "duplicate author %d", c.AuthorID)
		seen[c.AuthorID] = true
		assert.GreaterOrEqual(t, c.Score, -1.0)
		assert.LessOrEqual(t, c.Score, 1.0)
	}

	// Ada (centroid leaning toward the query) first, Grace
	// (orthogonal) second, Alan (zero centroid) scores exactly 0.
	assert.Equal(t, 0, ranked[0].AuthorID)
	assert.Equal(t, []int{1, 2}, []int{ranked[1].AuthorID, ranked[2].AuthorID})
	assert.Equal(t, 0.0, ranked[2].Score)

	// All publications across all authors go out in one batched call.
	require.Len(t, engine.batches, 1)
	assert.Len(t, engine.batches[0], 3)
}

func TestRank_AggregateDeterminism(t *testing.T) {
	first, err := Rank(context.Background(), aggregateStub(), testQuery(), testAuthors(), types.ModeAggregate)
	require.NoError(t, err)
	second, err := Rank(context.Background(), aggregateStub(), testQuery(), testAuthors(), types.ModeAggregate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	engine := &stubEngine{
		queryText: testQuery().EmbeddingText(),
		queryVec:  []float32{1, 0},
		vectors: map[string][]float32{
			"summary A": {0, 1},
			"summary B": {0, 1},
			"summary C": {0, 1},
		},
	}
	ranked, err := Rank(context.Background(), engine, testQuery(), testAuthors(), types.ModeSummarize)
	require.NoError(t, err)

	// All scores tie at 0; stable sort keeps author input order.
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{ranked[0].AuthorID, ranked[1].AuthorID, ranked[2].AuthorID})
}

func TestRank_SummarizeMode(t *testing.T) {
	engine := &stubEngine{
		queryText: testQuery().EmbeddingText(),
		queryVec:  []float32{1, 0},
		vectors: map[string][]float32{
			"summary A": {0, 1},
			"summary B": {1, 0},
			"summary C": {1, 1},
		},
	}
	ranked, err := Rank(context.Background(), engine, testQuery(), testAuthors(), types.ModeSummarize)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].AuthorID)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestRank_SummarizeMissingSummary(t *testing.T) {
	authors := testAuthors()
	authors[1].Summary = ""

	_, err := Rank(context.Background(), &stubEngine{}, testQuery(), authors, types.ModeSummarize)
	assert.ErrorContains(t, err, "no narrative summary")
}

func TestRank_UnknownModeIsFatal(t *testing.T) {
	engine := aggregateStub()
	_, err := Rank(context.Background(), engine, testQuery(), testAuthors(), types.Mode("hybrid"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown aggregation mode")
	// Rejected before any embedding work.
	assert.Empty(t, engine.batches)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "fitness_scores_aggregate_query_2.csv", ScoresFileName(types.ModeAggregate, 2))
	assert.Equal(t, "output_summarize_query_0.txt", OutputFileName(types.ModeSummarize, 0))
}

func TestWriteScoresCSV(t *testing.T) {
	authors := testAuthors()
	ranked := []types.RankedCandidate{
		{AuthorID: 1, Score: 0.923456},
		{AuthorID: 0, Score: 0.5},
		{AuthorID: 2, Score: 0},
	}

	path := filepath.Join(t.TempDir(), "log", "fitness_scores_aggregate_query_0.csv")
	require.NoError(t, WriteScoresCSV(path, ranked, authors))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Rank", "Author Name", "Fitness Score", "Author ID"}, rows[0])
	assert.Equal(t, []string{"1", "Grace Hopper", "0.923456", "1"}, rows[1])
	assert.Equal(t, []string{"2", "Ada Lovelace", "0.500000", "0"}, rows[2])
	assert.Equal(t, []string{"3", "Alan Turing", "0.000000", "2"}, rows[3])
}
