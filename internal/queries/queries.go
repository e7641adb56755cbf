// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queries loads the paper queries the pipeline ranks reviewers
// against.
package queries

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// Load reads a query list from a JSON or YAML file, chosen by
// extension. An empty list is a configuration error: every downstream
// stage assumes at least one query.
func Load(path string) ([]types.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}

	var queries []types.Query
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &queries); err != nil {
			return nil, fmt.Errorf("parsing query file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &queries); err != nil {
			return nil, fmt.Errorf("parsing query file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported query file extension %q (want .json, .yaml or .yml)", ext)
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("query file %s contains no queries", path)
	}
	for i, q := range queries {
		if q.Title == "" {
			return nil, fmt.Errorf("query %d has no title", i)
		}
	}
	return queries, nil
}
