// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Query is the paper that candidate reviewers are ranked against.
// Read-only input for one ranking run.
type Query struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
}

// EmbeddingText returns the canonical text embedded for the query.
func (q Query) EmbeddingText() string {
	return fmt.Sprintf("Title: %s\nAbstract: %s", q.Title, q.Abstract)
}

// Mode selects how an author's publications become one embeddable
// representation. It is a closed enumeration: anything other than the
// two constants is a configuration error, fatal to the run.
type Mode string

const (
	// ModeAggregate embeds every publication and uses the centroid.
	ModeAggregate Mode = "aggregate"

	// ModeSummarize embeds the author's narrative summary directly.
	ModeSummarize Mode = "summarize"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAggregate, ModeSummarize:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown aggregation mode %q: use %q or %q", s, ModeAggregate, ModeSummarize)
}

// RankedCandidate is one entry of a ranking: an index into the author
// collection and its cosine similarity to the query, in [-1, 1].
type RankedCandidate struct {
	AuthorID int     `json:"author_id"`
	Score    float64 `json:"score"`
}

// JustificationRecord is one generated justification for a top-K
// candidate. Records are appended in rank order; the sequence is the
// unit of incremental checkpointing.
type JustificationRecord struct {
	// Rank is 1-based.
	Rank int `json:"rank"`

	// Name is the candidate author's name.
	Name string `json:"name"`

	// Fitness is the similarity score carried through from ranking.
	Fitness float64 `json:"fitness"`

	// AuthorID indexes into the author collection of the run.
	AuthorID int `json:"author_id"`

	// Explanation is the generated justification text.
	Explanation string `json:"explanation"`
}
