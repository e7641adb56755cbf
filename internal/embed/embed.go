// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed provides vector embedding generation and similarity.
// Two engines are supported: Google GenAI (Gemini) and any
// OpenAI-compatible embeddings endpoint.
package embed

import (
	"context"
	"fmt"
	"math"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// Engine generates vector embeddings for text.
type Engine interface {
	// Embed generates the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the engine identifier.
	Name() string
}

// NewEngine creates an embedding engine from configuration. An unknown
// provider is a configuration error.
func NewEngine(ctx context.Context, cfg types.EmbedConfig) (Engine, error) {
	switch cfg.Provider {
	case "genai":
		return NewGenAIEngine(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		return &OpenAIEngine{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}, nil
	}
	return nil, fmt.Errorf("unsupported embedding provider %q: use genai or openai", cfg.Provider)
}

// Cosine computes the cosine similarity of two vectors in [-1, 1].
// A zero vector has no direction; its similarity to anything is 0,
// which is how zero-publication authors stay in a ranking with a
// neutral score.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Centroid computes the arithmetic mean of a set of vectors. An empty
// set yields the zero vector of the given dimension.
func Centroid(vectors [][]float32, dim int) []float32 {
	out := make([]float32, dim)
	if len(vectors) == 0 {
		return out
	}

	sums := make([]float64, dim)
	for _, v := range vectors {
		for i := range v {
			sums[i] += float64(v[i])
		}
	}
	for i := range sums {
		out[i] = float32(sums[i] / float64(len(vectors)))
	}
	return out
}
