// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores candidate reviewers against a query by embedding
// similarity under one of two aggregation modes.
package rank

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/expert-finder/internal/embed"
	"github.com/pdiddy/expert-finder/pkg/types"
)

// Rank embeds the query and every author representation, then returns
// one RankedCandidate per author in descending similarity order. Ties
// keep the author input order (stable sort), so re-running with the
// same embeddings and author order yields the identical sequence.
//
// In aggregate mode each author is represented by the centroid of its
// publication embeddings; all publications across all authors are
// embedded in a single batched call. An author with no publications
// keeps the zero centroid and ranks with similarity 0. In summarize
// mode each author's narrative summary is embedded directly; a missing
// summary is a data error.
func Rank(ctx context.Context, engine embed.Engine, query types.Query, authors []types.AuthorProfile, mode types.Mode) ([]types.RankedCandidate, error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	queryVec, err := engine.Embed(ctx, query.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	var authorVecs [][]float32
	switch mode {
	case types.ModeAggregate:
		authorVecs, err = aggregateVectors(ctx, engine, authors, len(queryVec))
	case types.ModeSummarize:
		authorVecs, err = summaryVectors(ctx, engine, authors)
	}
	if err != nil {
		return nil, err
	}

	ranked := make([]types.RankedCandidate, len(authors))
	for i, vec := range authorVecs {
		score, err := embed.Cosine(queryVec, vec)
		if err != nil {
			return nil, fmt.Errorf("scoring author %q: %w", authors[i].Name, err)
		}
		ranked[i] = types.RankedCandidate{AuthorID: i, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// aggregateVectors embeds every publication of every author in one
// batched call and computes per-author centroids.
func aggregateVectors(ctx context.Context, engine embed.Engine, authors []types.AuthorProfile, dim int) ([][]float32, error) {
	var texts []string
	counts := make([]int, len(authors))
	for i, a := range authors {
		counts[i] = len(a.Publications)
		for _, pub := range a.Publications {
			texts = append(texts, fmt.Sprintf("Title: %s\nAbstract: %s", pub.Title, pub.Abstract))
		}
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = engine.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding publications: %w", err)
		}
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
	}

	out := make([][]float32, len(authors))
	offset := 0
	for i, n := range counts {
		out[i] = embed.Centroid(vectors[offset:offset+n], dim)
		offset += n
	}
	return out, nil
}

// summaryVectors embeds each author's narrative summary, one text per
// author.
func summaryVectors(ctx context.Context, engine embed.Engine, authors []types.AuthorProfile) ([][]float32, error) {
	texts := make([]string, len(authors))
	for i, a := range authors {
		if !a.HasSummary() {
			return nil, fmt.Errorf("author %q has no narrative summary: run the profile step first", a.Name)
		}
		texts[i] = a.Summary
	}

	vectors, err := engine.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding summaries: %w", err)
	}
	return vectors, nil
}
