// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files,
// with environment variables as a fallback. Each file in the directory
// represents one secret: the filename is the key name and the file
// contents (trimmed) are the value.
//
// Supported key files: qwen-api-key, gemini-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds secrets resolved at process start. It is populated once
// and read-only afterwards.
type Store map[string]string

// Load reads all files in dir and returns a Store of filename to
// trimmed contents. A missing directory or missing files are not
// errors; Load returns an empty Store. Unreadable files produce a
// warning on stderr but do not abort.
func Load(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			s[name] = value
		}
	}

	return s, nil
}

// Get resolves a key: the key file wins, then the environment variable
// (the key name upper-cased with dashes replaced by underscores, e.g.
// qwen-api-key -> QWEN_API_KEY), then the empty string.
func (s Store) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	env := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	return strings.TrimSpace(os.Getenv(env))
}
