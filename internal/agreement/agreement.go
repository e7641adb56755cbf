// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agreement measures how much the different scoring systems
// agree on their top-ranked candidates, per query and on average.
package agreement

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/pkg/types"
)

const defaultTopN = 10

// defaultSystems are the four scoring systems compared by default.
var defaultSystems = []string{"gpt", "gemini", "summarize", "aggregate"}

// Report holds pairwise top-N overlaps: one row per query plus a
// column-wise average.
type Report struct {
	// Pairs are the column labels, one per unordered system pair, in
	// combination order (e.g. gpt-gem, gpt-sum, ...).
	Pairs []string

	// Rows hold per-query overlap counts, one count per pair.
	Rows []Row

	// Averages are the column-wise means across all rows, rounded to
	// two decimals.
	Averages []float64
}

// Row is the pairwise overlap counts for one query.
type Row struct {
	QueryID  string
	Overlaps []int
}

// ComputeAgreement loads each system's consolidated top-N name list
// for every query and computes the pairwise overlaps. A missing file
// contributes an empty name set and a warning, not an error.
func ComputeAgreement(cfg types.AgreementConfig, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	systems := cfg.Systems
	if len(systems) == 0 {
		systems = defaultSystems
	}
	if len(systems) < 2 {
		return nil, fmt.Errorf("agreement needs at least 2 systems, got %d", len(systems))
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "log"
	}

	report := &Report{Pairs: pairLabels(systems)}
	for _, queryID := range cfg.QueryIDs {
		names := make(map[string][]string, len(systems))
		for _, system := range systems {
			path := filepath.Join(logDir, system, queryID+".csv")
			content, err := os.ReadFile(path)
			if err != nil {
				log.Warn("consolidated file not found",
					zap.String("system", system),
					zap.String("query", queryID))
				names[system] = nil
				continue
			}
			names[system] = ParseNames(string(content), topN)
		}

		row := Row{QueryID: queryID}
		for i := 0; i < len(systems); i++ {
			for j := i + 1; j < len(systems); j++ {
				row.Overlaps = append(row.Overlaps, overlap(names[systems[i]], names[systems[j]]))
			}
		}
		report.Rows = append(report.Rows, row)
	}

	report.Averages = columnAverages(report.Rows, len(report.Pairs))
	return report, nil
}

// pairLabels builds the column labels for every unordered system pair,
// abbreviating each system to its first three letters (gemini becomes
// gem, not gem-ini's gei).
func pairLabels(systems []string) []string {
	var labels []string
	for i := 0; i < len(systems); i++ {
		for j := i + 1; j < len(systems); j++ {
			labels = append(labels, abbreviate(systems[i])+"-"+abbreviate(systems[j]))
		}
	}
	return labels
}

func abbreviate(system string) string {
	if system == "gemini" {
		return "gem"
	}
	if len(system) > 3 {
		return system[:3]
	}
	return system
}

// overlap counts the distinct names present in both lists.
func overlap(a, b []string) int {
	seen := make(map[string]struct{}, len(a))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	count := 0
	matched := make(map[string]struct{})
	for _, name := range b {
		if _, ok := seen[name]; !ok {
			continue
		}
		if _, dup := matched[name]; dup {
			continue
		}
		matched[name] = struct{}{}
		count++
	}
	return count
}

// columnAverages computes per-column means rounded to two decimals.
func columnAverages(rows []Row, cols int) []float64 {
	averages := make([]float64, cols)
	if len(rows) == 0 {
		return averages
	}
	for _, row := range rows {
		for i, v := range row.Overlaps {
			averages[i] += float64(v)
		}
	}
	for i := range averages {
		averages[i] = math.Round(averages[i]/float64(len(rows))*100) / 100
	}
	return averages
}

// WriteReport writes the agreement report CSV: a docID header, one row
// per query, and a trailing synthetic "average" row.
func WriteReport(path string, report *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString("docID," + strings.Join(report.Pairs, ",") + "\n")
	for _, row := range report.Rows {
		fields := make([]string, 0, len(row.Overlaps)+1)
		fields = append(fields, row.QueryID)
		for _, v := range row.Overlaps {
			fields = append(fields, strconv.Itoa(v))
		}
		w.WriteString(strings.Join(fields, ",") + "\n")
	}

	fields := make([]string, 0, len(report.Averages)+1)
	fields = append(fields, "average")
	for _, v := range report.Averages {
		fields = append(fields, strconv.FormatFloat(v, 'f', 2, 64))
	}
	w.WriteString(strings.Join(fields, ",") + "\n")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing report file: %w", err)
	}
	return nil
}
