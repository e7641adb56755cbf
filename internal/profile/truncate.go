// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"strings"

	"github.com/pdiddy/expert-finder/pkg/types"
)

const defaultMaxPublicationTokens = 100000

// EstimateTokens roughly estimates the token count of text; English
// text averages about four characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// TruncatePublications deterministically shrinks a publication list to
// fit the token budget. Trailing (older) publications are dropped
// first, down to a minimum of one; then abstracts are trimmed sentence
// by sentence from the end; a single long sentence is cut to its first
// twenty words. The input slice is not modified.
func TruncatePublications(pubs []types.Publication, maxTokens int) []types.Publication {
	if len(pubs) == 0 {
		return pubs
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxPublicationTokens
	}

	selected := make([]types.Publication, len(pubs))
	copy(selected, pubs)

	total := 0
	for _, pub := range selected {
		total += EstimateTokens(pub.Title + pub.Abstract)
	}
	if total <= maxTokens {
		return selected
	}

	for total > maxTokens && len(selected) > 1 {
		last := selected[len(selected)-1]
		total -= EstimateTokens(last.Title + last.Abstract)
		selected = selected[:len(selected)-1]
	}

	for i := range selected {
		if total <= maxTokens {
			break
		}
		abstract := selected[i].Abstract
		for total > maxTokens && len(abstract) > 100 {
			shorter := dropLastSentence(abstract)
			if shorter == abstract {
				break
			}
			total -= EstimateTokens(selected[i].Title + abstract)
			abstract = shorter
			total += EstimateTokens(selected[i].Title + abstract)
			selected[i].Abstract = abstract
		}
	}
	return selected
}

// dropLastSentence removes the trailing sentence of abstract, or its
// trailing words when only one sentence remains. Returns the input
// unchanged when nothing further can be removed.
func dropLastSentence(abstract string) string {
	sentences := strings.Split(abstract, ". ")
	if len(sentences) > 1 {
		return strings.Join(sentences[:len(sentences)-1], ". ") + "."
	}
	words := strings.Fields(abstract)
	if len(words) > 20 {
		return strings.Join(words[:20], " ") + "..."
	}
	return abstract
}
