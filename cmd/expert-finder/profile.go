package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/expert-finder/internal/fetch"
	"github.com/pdiddy/expert-finder/internal/profile"
	"github.com/pdiddy/expert-finder/pkg/types"
)

const (
	defaultFetchTimeout = 20 * time.Second
	defaultUserAgent    = "expert-finder/0.1"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build author profiles from publication URLs",
	Long: `Profile reads the author database, fetches title and abstract for every
publication URL (arXiv, OpenReview, NeurIPS proceedings), and generates a
narrative research summary per author. The result is snapshotted to
author_profile.json; re-running resumes from the snapshot and only fills in
what is missing.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("database", "authors.jsonl", "author database (JSONL: one {name, publication_urls} per line)")
	profileCmd.Flags().String("cache", "author_profile.json", "author profile snapshot path")
	profileCmd.Flags().String("llm-provider", "qwen", "summary generation provider (qwen or gemini)")
	profileCmd.Flags().String("llm-model", "qwen-plus", "summary generation model")
	profileCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 20s)")
	profileCmd.Flags().Duration("fetch-delay", 0, "delay between publication fetches (default 3s)")
	profileCmd.Flags().Int("word-limit", 250, "maximum summary length in words")
	profileCmd.Flags().Int("max-pub-tokens", 100000, "estimated token budget for the publication list")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	databasePath, _ := cmd.Flags().GetString("database")
	cachePath, _ := cmd.Flags().GetString("cache")
	provider, _ := cmd.Flags().GetString("llm-provider")
	model, _ := cmd.Flags().GetString("llm-model")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	fetchDelay, _ := cmd.Flags().GetDuration("fetch-delay")
	wordLimit, _ := cmd.Flags().GetInt("word-limit")
	maxPubTokens, _ := cmd.Flags().GetInt("max-pub-tokens")

	backend, err := newGenBackend(cmd.Context(), provider, model)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	builder := &profile.Builder{
		Fetchers: fetch.DefaultFetchers(client),
		Backend:  backend,
		Cfg: types.ProfileConfig{
			DatabasePath:         databasePath,
			CachePath:            cachePath,
			SummaryWordLimit:     wordLimit,
			MaxPublicationTokens: maxPubTokens,
		},
		FetchCfg: types.FetchConfig{
			HTTPConfig:   types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
			RequestDelay: fetchDelay,
		},
		Log: log,
	}

	authors, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d author profiles (cache: %s)\n", len(authors), cachePath)
	return nil
}
