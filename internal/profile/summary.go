// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"fmt"
	"strings"

	"github.com/pdiddy/expert-finder/pkg/types"
)

const defaultSummaryWordLimit = 250

// summarySystemPromptFmt sets the research-analysis role for summary
// generation; the verb fills in the word limit.
const summarySystemPromptFmt = `You are an academic expert specializing in research analysis. Your task is to analyze an author's publications and provide a comprehensive summary of their research contributions, expertise areas, and main research directions.

Please focus on:
1. Identifying the main research themes and areas of expertise
2. Highlighting key methodologies and approaches used
3. Summarizing significant contributions and findings
4. Describing the evolution of their research interests
5. Identifying potential applications and impact of their work

Provide a clear, concise summary that would be useful for understanding this researcher's expertise and contributions to their field. Make it maximum %d words.`

// summaryPrompts renders the system and user prompt for one author's
// summary generation.
func summaryPrompts(name string, pubs []types.Publication, wordLimit int) (system, user string) {
	if wordLimit <= 0 {
		wordLimit = defaultSummaryWordLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Author: %s\n\n", name)
	b.WriteString("Publications:\n\n")
	for i, pub := range pubs {
		fmt.Fprintf(&b, "%d. Title: %s\n", i+1, pub.Title)
		fmt.Fprintf(&b, "   Abstract: %s\n\n", pub.Abstract)
	}
	fmt.Fprintf(&b, "Please provide a comprehensive summary of this author's research contributions, expertise areas, and main research directions based on their publications. Focus on identifying patterns, methodologies, and key research themes. Make it maximum %d words.", wordLimit)

	return fmt.Sprintf(summarySystemPromptFmt, wordLimit), b.String()
}
