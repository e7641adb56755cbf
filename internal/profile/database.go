// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// LoadDatabase reads the author database: newline-delimited JSON, one
// {"name", "publication_urls"} object per line. Authors without a name
// are dropped.
func LoadDatabase(path string) ([]types.AuthorProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening author database: %w", err)
	}
	defer f.Close()

	var authors []types.AuthorProfile
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var author types.AuthorProfile
		if err := json.Unmarshal([]byte(line), &author); err != nil {
			return nil, fmt.Errorf("parsing author database line %d: %w", lineNo, err)
		}
		if strings.TrimSpace(author.Name) == "" {
			continue
		}
		authors = append(authors, author)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading author database: %w", err)
	}
	return authors, nil
}
