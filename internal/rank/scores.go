// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// ScoresFileName returns the side-channel score file name for one
// (mode, query) pair: fitness_scores_{mode}_query_{i}.csv.
func ScoresFileName(mode types.Mode, queryIdx int) string {
	return fmt.Sprintf("fitness_scores_%s_query_%d.csv", mode, queryIdx)
}

// OutputFileName returns the raw justification output file name for
// one (mode, query) pair: output_{mode}_query_{i}.txt.
func OutputFileName(mode types.Mode, queryIdx int) string {
	return fmt.Sprintf("output_%s_query_%d.txt", mode, queryIdx)
}

// WriteScoresCSV writes the full ranking to the side-channel score
// file with header Rank,Author Name,Fitness Score,Author ID.
func WriteScoresCSV(path string, ranked []types.RankedCandidate, authors []types.AuthorProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating score directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating score file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Rank", "Author Name", "Fitness Score", "Author ID"}); err != nil {
		return fmt.Errorf("writing score header: %w", err)
	}

	for i, c := range ranked {
		row := []string{
			strconv.Itoa(i + 1),
			authors[c.AuthorID].Name,
			strconv.FormatFloat(c.Score, 'f', 6, 64),
			strconv.Itoa(c.AuthorID),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing score row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing score file: %w", err)
	}
	return nil
}
