// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package justify

import (
	"bytes"
	"fmt"
	"text/template"
)

// justificationSystemPrompt sets the reviewer-assessment role for every
// generation call.
const justificationSystemPrompt = "You are an academic chair of a conference. Given the information of a paper (title and abstract) and a reviewer (summary of research), explain why the reviewer is a good or bad fit to review the paper according to the provided fitness score."

// justificationPromptTmpl is the user message sent for each candidate.
// The fitness score is on a 0-100 scale.
var justificationPromptTmpl = template.Must(template.New("justification").Parse(`
Paper Title: {{.Title}}
Paper Abstract: {{.Abstract}}
Summary of Research by the Reviewer: {{.AuthorInfo}}
Fitness Score (out of 100): {{.Score}}

Explain whether the reviewer is a good fit to review the paper based on the given fitness score:
`))

// promptData carries the per-candidate values for the user prompt.
type promptData struct {
	Title      string
	Abstract   string
	AuthorInfo string
	Score      int
}

// renderPrompt fills the user prompt template for one candidate.
func renderPrompt(data promptData) (string, error) {
	var buf bytes.Buffer
	if err := justificationPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering justification prompt: %w", err)
	}
	return buf.String(), nil
}
