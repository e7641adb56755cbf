// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agreement

import (
	"encoding/csv"
	"regexp"
	"strings"
	"unicode"
)

// descriptiveMarkers are words that indicate a "name" column actually
// holds descriptive text, which happens when an upstream system wrote
// a malformed CSV.
var descriptiveMarkers = []string{"expert", "researcher", "specialist", "leading", "known", "prominent"}

// fallbackPattern extracts "number, name," pairs from malformed CSV
// content.
var fallbackPattern = regexp.MustCompile(`(\d+),\s*([^,]+),`)

// ParseNames extracts up to topN candidate names from consolidated CSV
// content. It first tries a strict CSV read of the name column; if the
// layout is broken or the extracted values do not look like person
// names, it falls back to a permissive pattern scan for
// "number, name," pairs.
func ParseNames(content string, topN int) []string {
	if names := parseStrict(content, topN); names != nil {
		return names
	}
	return parseFallback(content, topN)
}

// parseStrict reads the name column of a well-formed CSV. Returns nil
// when the layout is unusable or the first name fails the plausibility
// check.
func parseStrict(content string, topN int) []string {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	nameCol := -1
	for i, col := range rows[0] {
		if strings.TrimSpace(col) == "name" {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil
	}

	var names []string
	for _, row := range rows[1:] {
		if len(names) == topN {
			break
		}
		if nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 || !looksLikeName(names[0]) {
		return nil
	}
	return names
}

// parseFallback scans content for "number, name," pairs.
func parseFallback(content string, topN int) []string {
	var names []string
	for _, m := range fallbackPattern.FindAllStringSubmatch(content, -1) {
		if len(names) == topN {
			break
		}
		name := strings.Trim(strings.TrimSpace(m[2]), `"`)
		if name == "" || len(name) >= 100 {
			continue
		}
		names = append(names, name)
	}
	return names
}

// looksLikeName reports whether s plausibly holds a person's name
// rather than descriptive text: short, no comma, mixed case with a
// space, and free of descriptive markers.
func looksLikeName(s string) bool {
	if s == "" || len(s) >= 50 {
		return false
	}
	if strings.Contains(s, ",") {
		return false
	}
	if !strings.Contains(s, " ") {
		return false
	}
	hasUpper := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return false
	}
	lower := strings.ToLower(s)
	for _, marker := range descriptiveMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
