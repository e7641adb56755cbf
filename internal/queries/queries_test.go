// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQueryFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeQueryFile(t, "queries.json", `[
		{"title": "Attention Models", "abstract": "We study attention."},
		{"title": "Graph Learning", "abstract": "We study graphs."}
	]`)

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Attention Models", got[0].Title)
	assert.Equal(t, "We study graphs.", got[1].Abstract)
}

func TestLoad_YAML(t *testing.T) {
	path := writeQueryFile(t, "queries.yaml", `
- title: Attention Models
  abstract: We study attention.
`)

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Attention Models", got[0].Title)
}

func TestLoad_EmptyListIsError(t *testing.T) {
	path := writeQueryFile(t, "queries.json", `[]`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "no queries")
}

func TestLoad_MissingTitleIsError(t *testing.T) {
	path := writeQueryFile(t, "queries.json", `[{"abstract": "no title here"}]`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "no title")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeQueryFile(t, "queries.toml", `title = "x"`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported query file extension")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
