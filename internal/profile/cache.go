// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/expert-finder/pkg/types"
)

// LoadCache reads the author profile snapshot: a JSON array of
// profiles. Returns os.ErrNotExist when no snapshot is present.
func LoadCache(path string) ([]types.AuthorProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles []types.AuthorProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing profile cache %s: %w", path, err)
	}
	return profiles, nil
}

// SaveCache writes the full profile snapshot via a temp file and
// rename, so a reader never observes a partial cache.
func SaveCache(path string, profiles []types.AuthorProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile cache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing profile cache: %w", err)
	}
	return nil
}
