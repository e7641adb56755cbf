// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package justify generates natural-language justifications for the
// top-ranked candidates of a query and checkpoints them to disk after
// every successful generation.
package justify

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/internal/gen"
	"github.com/pdiddy/expert-finder/pkg/types"
)

const (
	defaultMaxRetries   = 10
	defaultRetryDelay   = 1 * time.Second
	defaultRequestDelay = 2 * time.Second
)

// Generator produces justification records for ranked candidates.
type Generator struct {
	backend gen.Backend
	cfg     types.JustifyConfig
	log     *zap.Logger
}

// NewGenerator returns a Generator using backend for text generation.
// A nil logger is replaced with a no-op logger.
func NewGenerator(backend gen.Backend, cfg types.JustifyConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{backend: backend, cfg: cfg, log: log}
}

// GenerateTopK generates one justification per top-k candidate, in rank
// order, and rewrites outPath after every record so an interrupted run
// loses at most the in-flight candidate. Re-invocation with the same
// inputs overwrites the output deterministically from rank 1.
//
// Transient generation failures are retried up to the configured budget
// with a fixed delay; validation failures propagate immediately.
// Either terminal failure aborts the whole batch. This is deliberately
// stricter than the profile fetch step, which skips and continues: a
// hole in the justification sequence would silently corrupt every
// downstream consolidation.
func (g *Generator) GenerateTopK(ctx context.Context, query types.Query, ranked []types.RankedCandidate, authors []types.AuthorProfile, k int, outPath string) ([]types.JustificationRecord, error) {
	if k > len(ranked) {
		k = len(ranked)
	}

	records := make([]types.JustificationRecord, 0, k)
	for i := 0; i < k; i++ {
		cand := ranked[i]
		author := authors[cand.AuthorID]

		prompt, err := renderPrompt(promptData{
			Title:      query.Title,
			Abstract:   query.Abstract,
			AuthorInfo: author.Summary,
			Score:      displayScore(cand.Score),
		})
		if err != nil {
			return records, err
		}

		explanation, attempts, err := g.generateWithRetry(ctx, prompt)
		if err != nil {
			return records, fmt.Errorf("justifying candidate %q (rank %d): %w", author.Name, i+1, err)
		}
		g.log.Info("generated justification",
			zap.String("author", author.Name),
			zap.Int("rank", i+1),
			zap.Int("attempts", attempts))

		records = append(records, types.JustificationRecord{
			Rank:        i + 1,
			Name:        author.Name,
			Fitness:     cand.Score,
			AuthorID:    cand.AuthorID,
			Explanation: explanation,
		})
		if err := WriteRecords(outPath, records); err != nil {
			return records, err
		}

		// Polite delay between candidates; not needed after the last.
		if i < k-1 {
			if err := sleepCtx(ctx, g.requestDelay()); err != nil {
				return records, err
			}
		}
	}
	return records, nil
}

// generateWithRetry performs up to the configured number of attempts
// for transient failures and returns the attempt count alongside the
// generated text. Validation failures are returned immediately.
func (g *Generator) generateWithRetry(ctx context.Context, prompt string) (string, int, error) {
	maxAttempts := g.cfg.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := g.backend.Generate(ctx, justificationSystemPrompt, prompt)
		if err == nil {
			return text, attempt, nil
		}
		if gen.IsValidation(err) {
			return "", attempt, err
		}
		lastErr = err
		g.log.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err))

		if attempt < maxAttempts {
			if serr := sleepCtx(ctx, g.retryDelay()); serr != nil {
				return "", attempt, serr
			}
		}
	}
	return "", maxAttempts, fmt.Errorf("retry budget exhausted after %d attempts: %w", maxAttempts, lastErr)
}

// displayScore rescales a cosine similarity to the 0-100 scale shown
// in the prompt.
func displayScore(similarity float64) int {
	return int(math.Round(similarity * 100))
}

func (g *Generator) retryDelay() time.Duration {
	if g.cfg.RetryDelay > 0 {
		return g.cfg.RetryDelay
	}
	return defaultRetryDelay
}

func (g *Generator) requestDelay() time.Duration {
	if g.cfg.RequestDelay > 0 {
		return g.cfg.RequestDelay
	}
	return defaultRequestDelay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
