// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consolidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCleanRationale(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "a good fit", "a good fit"},
		{"newlines", "line one\nline two\r\nline three", "line one line two line three"},
		{"tabs and feeds", "a\tb\fc\vd", "a b c d"},
		{"run collapse", "a  \n\n  b", "a b"},
		{"leading trailing", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRationale(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n")
			assert.NotContains(t, got, "\r")
			assert.NotContains(t, got, "\t")
		})
	}
}

func TestConsolidateQuery_Basic(t *testing.T) {
	logDir := t.TempDir()
	writeFile(t, filepath.Join(logDir, "output_aggregate_query_0.txt"),
		`{"rank":1,"name":"Ada Lovelace","fitness":0.912345,"author_id":0,"explanation":"Strong match.\nVery relevant."}
{"rank":2,"name":"Grace Hopper","fitness":0.5,"author_id":1,"explanation":"Partial match."}
`)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 0, zap.NewNop()))

	data, err := os.ReadFile(filepath.Join(logDir, "aggregate", "0.csv"))
	require.NoError(t, err)

	want := `"index","name","fitness_score","rationale"
"1","Ada Lovelace","0.91","Strong match. Very relevant."
"2","Grace Hopper","0.50","Partial match."
`
	assert.Equal(t, want, string(data))
}

func TestConsolidateQuery_ScoreOverrideByName(t *testing.T) {
	logDir := t.TempDir()
	writeFile(t, filepath.Join(logDir, "output_summarize_query_1.txt"),
		`{"rank":1,"name":"Ada Lovelace","fitness":0.5,"author_id":0,"explanation":"x"}
{"rank":2,"name":"Alan Turing","fitness":0.25,"author_id":2,"explanation":"y"}
`)
	// Side-channel file overrides Ada; Alan is absent and keeps the
	// record's own score. The duplicate Ada row is ignored: first wins.
	writeFile(t, filepath.Join(logDir, "fitness_scores_summarize_query_1.csv"),
		`Rank,Author Name,Fitness Score,Author ID
1,Ada Lovelace,0.987654,0
2,Ada Lovelace,0.111111,3
`)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeSummarize, 1, zap.NewNop()))

	data, err := os.ReadFile(filepath.Join(logDir, "summarize", "1.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"1","Ada Lovelace","0.99","x"`)
	assert.Contains(t, string(data), `"2","Alan Turing","0.25","y"`)
}

func TestConsolidateQuery_MissingFieldsStillEmitRow(t *testing.T) {
	logDir := t.TempDir()
	writeFile(t, filepath.Join(logDir, "output_aggregate_query_0.txt"),
		`{"rank":1,"name":"Ada Lovelace","fitness":0.5,"author_id":0}
{"name":"Grace Hopper","author_id":1,"explanation":"fine"}
`)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 0, zap.NewNop()))

	data, err := os.ReadFile(filepath.Join(logDir, "aggregate", "0.csv"))
	require.NoError(t, err)
	// Missing explanation: empty rationale. Missing rank and fitness:
	// empty index and score columns.
	assert.Contains(t, string(data), `"1","Ada Lovelace","0.50",""`)
	assert.Contains(t, string(data), `"","Grace Hopper","","fine"`)
}

func TestConsolidateQuery_MissingRawFileIsSkipped(t *testing.T) {
	logDir := t.TempDir()
	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 3, zap.NewNop()))
	_, err := os.Stat(filepath.Join(logDir, "aggregate", "3.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestConsolidateQuery_QuotesInsideFields(t *testing.T) {
	logDir := t.TempDir()
	writeFile(t, filepath.Join(logDir, "output_aggregate_query_0.txt"),
		`{"rank":1,"name":"Ada \"The Countess\" Lovelace","fitness":0.5,"author_id":0,"explanation":"she said \"yes\""}
`)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 0, zap.NewNop()))

	data, err := os.ReadFile(filepath.Join(logDir, "aggregate", "0.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Ada ""The Countess"" Lovelace"`)
	assert.Contains(t, string(data), `"she said ""yes"""`)
}

func TestConsolidateQuery_Idempotent(t *testing.T) {
	logDir := t.TempDir()
	writeFile(t, filepath.Join(logDir, "output_aggregate_query_0.txt"),
		`{"rank":1,"name":"Ada Lovelace","fitness":0.5,"author_id":0,"explanation":"x"}
`)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 0, zap.NewNop()))
	first, err := os.ReadFile(filepath.Join(logDir, "aggregate", "0.csv"))
	require.NoError(t, err)

	require.NoError(t, ConsolidateQuery(logDir, types.ModeAggregate, 0, zap.NewNop()))
	second, err := os.ReadFile(filepath.Join(logDir, "aggregate", "0.csv"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_ContinuesPastMissingQueries(t *testing.T) {
	logDir := t.TempDir()
	// Only query 1 exists; queries 0 and 2 must be skipped without
	// stopping the run.
	writeFile(t, filepath.Join(logDir, "output_aggregate_query_1.txt"),
		`{"rank":1,"name":"Ada Lovelace","fitness":0.5,"author_id":0,"explanation":"x"}
`)

	cfg := types.ConsolidateConfig{
		LogDir:  logDir,
		Modes:   []types.Mode{types.ModeAggregate},
		Queries: []int{0, 1, 2},
	}
	require.NoError(t, Run(cfg, zap.NewNop()))

	_, err := os.Stat(filepath.Join(logDir, "aggregate", "1.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(logDir, "aggregate", "0.csv"))
	assert.True(t, os.IsNotExist(err))
}
