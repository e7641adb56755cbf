// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package consolidate turns the raw per-query justification outputs
// into canonical per-query CSV files, one directory per aggregation
// mode.
package consolidate

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/internal/rank"
	"github.com/pdiddy/expert-finder/pkg/types"
)

// rawRecord mirrors a justification record line with optional fields.
// Pointer fields distinguish "absent" from zero values so a record
// missing its fitness or explanation still yields a row, with those
// columns empty.
type rawRecord struct {
	Rank        *int     `json:"rank"`
	Name        string   `json:"name"`
	Fitness     *float64 `json:"fitness"`
	Explanation string   `json:"explanation"`
}

// Run consolidates every (mode, query) pair in cfg. Missing input
// files are logged and skipped; the remaining pairs still consolidate.
func Run(cfg types.ConsolidateConfig, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "log"
	}

	for _, mode := range cfg.Modes {
		for _, queryIdx := range cfg.Queries {
			if err := ConsolidateQuery(logDir, mode, queryIdx, log); err != nil {
				return fmt.Errorf("consolidating %s query %d: %w", mode, queryIdx, err)
			}
		}
	}
	return nil
}

// ConsolidateQuery reads the raw record sequence for one (mode, query)
// pair, joins in the side-channel score file when present, and writes
// the canonical CSV to {logDir}/{mode}/{queryIdx}.csv. A missing raw
// output file is a warning, not an error.
func ConsolidateQuery(logDir string, mode types.Mode, queryIdx int, log *zap.Logger) error {
	outputPath := filepath.Join(logDir, rank.OutputFileName(mode, queryIdx))
	records, err := readRawRecords(outputPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("raw output not found, skipping query",
			zap.String("path", outputPath))
		return nil
	}
	if err != nil {
		return err
	}

	scoresPath := filepath.Join(logDir, rank.ScoresFileName(mode, queryIdx))
	scores, err := readScoreOverrides(scoresPath)
	if err != nil {
		log.Warn("could not read fitness scores, using record values",
			zap.String("path", scoresPath),
			zap.Error(err))
		scores = nil
	}

	consolidatedPath := filepath.Join(logDir, string(mode), fmt.Sprintf("%d.csv", queryIdx))
	if err := writeConsolidated(consolidatedPath, records, scores); err != nil {
		return err
	}
	log.Info("consolidated query",
		zap.String("mode", string(mode)),
		zap.Int("query", queryIdx),
		zap.Int("records", len(records)))
	return nil
}

// readRawRecords parses the newline-delimited JSON record file.
func readRawRecords(path string) ([]rawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []rawRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parsing record line in %s: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// readScoreOverrides loads the side-channel score file into a name to
// score map. The name is a de facto join key; on a duplicate name the
// first row wins. A missing file returns an empty map.
func readScoreOverrides(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading score header: %w", err)
	}
	nameCol, scoreCol := -1, -1
	for i, col := range header {
		switch col {
		case "Author Name":
			nameCol = i
		case "Fitness Score":
			scoreCol = i
		}
	}
	if nameCol < 0 || scoreCol < 0 {
		return nil, fmt.Errorf("score file %s missing expected columns", path)
	}

	scores := make(map[string]float64)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading score row: %w", err)
		}
		name := row[nameCol]
		if _, ok := scores[name]; ok {
			continue
		}
		score, err := strconv.ParseFloat(row[scoreCol], 64)
		if err != nil {
			continue
		}
		scores[name] = score
	}
	return scores, nil
}

// writeConsolidated writes the canonical CSV: every field quoted,
// header index,name,fitness_score,rationale.
func writeConsolidated(path string, records []rawRecord, scores map[string]float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating mode directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating consolidated file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeQuotedRow(w, []string{"index", "name", "fitness_score", "rationale"})

	for _, rec := range records {
		index := ""
		if rec.Rank != nil {
			index = strconv.Itoa(*rec.Rank)
		}

		score := ""
		if override, ok := scores[rec.Name]; ok {
			score = strconv.FormatFloat(override, 'f', 2, 64)
		} else if rec.Fitness != nil {
			score = strconv.FormatFloat(*rec.Fitness, 'f', 2, 64)
		}

		writeQuotedRow(w, []string{index, rec.Name, score, CleanRationale(rec.Explanation)})
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing consolidated file: %w", err)
	}
	return nil
}

// writeQuotedRow writes one CSV row with every field quoted, doubling
// embedded quotes. encoding/csv only quotes fields that need it, and
// the canonical format quotes unconditionally.
func writeQuotedRow(w *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

// CleanRationale replaces every line break and control whitespace
// character with a space and collapses runs of whitespace, so the
// rationale always fits one CSV field.
func CleanRationale(s string) string {
	replacer := strings.NewReplacer(
		"\n", " ", "\r", " ", "\t", " ", "\f", " ", "\v", " ",
	)
	return strings.Join(strings.Fields(replacer.Replace(s)), " ")
}
