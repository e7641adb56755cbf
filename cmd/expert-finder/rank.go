package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/internal/justify"
	"github.com/pdiddy/expert-finder/internal/profile"
	"github.com/pdiddy/expert-finder/internal/queries"
	"github.com/pdiddy/expert-finder/internal/rank"
	"github.com/pdiddy/expert-finder/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score candidates per query and justify the top matches",
	Long: `Rank embeds each query and every author representation, writes the full
similarity ranking to fitness_scores_{mode}_query_{i}.csv, and generates a
justification for each of the top-K candidates, checkpointed to
output_{mode}_query_{i}.txt after every record.

The aggregation mode decides how an author is embedded: aggregate uses the
centroid of all publication embeddings, summarize embeds the narrative
summary.`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().String("queries", "queries.json", "query file (.json, .yaml or .yml)")
	rankCmd.Flags().String("cache", "author_profile.json", "author profile snapshot path")
	rankCmd.Flags().String("mode", "aggregate", "author embedding mode (aggregate or summarize)")
	rankCmd.Flags().String("log-dir", "log", "output directory for scores and raw justifications")
	rankCmd.Flags().Int("top-k", 10, "number of top candidates to justify")
	rankCmd.Flags().String("embed-provider", "openai", "embedding provider (genai or openai)")
	rankCmd.Flags().String("embed-model", "text-embedding-v3", "embedding model")
	rankCmd.Flags().String("llm-provider", "qwen", "justification provider (qwen or gemini)")
	rankCmd.Flags().String("llm-model", "qwen-plus", "justification model")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	queryPath, _ := cmd.Flags().GetString("queries")
	cachePath, _ := cmd.Flags().GetString("cache")
	modeStr, _ := cmd.Flags().GetString("mode")
	logDir, _ := cmd.Flags().GetString("log-dir")
	topK, _ := cmd.Flags().GetInt("top-k")
	embedProvider, _ := cmd.Flags().GetString("embed-provider")
	embedModel, _ := cmd.Flags().GetString("embed-model")
	llmProvider, _ := cmd.Flags().GetString("llm-provider")
	llmModel, _ := cmd.Flags().GetString("llm-model")

	mode, err := types.ParseMode(modeStr)
	if err != nil {
		return err
	}

	queryList, err := queries.Load(queryPath)
	if err != nil {
		return err
	}
	authors, err := profile.LoadCache(cachePath)
	if err != nil {
		return fmt.Errorf("loading author profiles (run the profile step first): %w", err)
	}

	engine, err := newEmbedEngine(cmd.Context(), embedProvider, embedModel)
	if err != nil {
		return err
	}
	backend, err := newGenBackend(cmd.Context(), llmProvider, llmModel)
	if err != nil {
		return err
	}
	generator := justify.NewGenerator(backend, types.JustifyConfig{}, log)

	for i, query := range queryList {
		log.Info("ranking query",
			zap.Int("query", i),
			zap.String("title", query.Title),
			zap.String("mode", string(mode)))

		ranked, err := rank.Rank(cmd.Context(), engine, query, authors, mode)
		if err != nil {
			return fmt.Errorf("ranking query %d: %w", i, err)
		}

		scoresPath := filepath.Join(logDir, rank.ScoresFileName(mode, i))
		if err := rank.WriteScoresCSV(scoresPath, ranked, authors); err != nil {
			return err
		}

		outPath := filepath.Join(logDir, rank.OutputFileName(mode, i))
		records, err := generator.GenerateTopK(cmd.Context(), query, ranked, authors, topK, outPath)
		if err != nil {
			return fmt.Errorf("justifying query %d: %w", i, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Query %d: ranked %d authors, justified top %d (%s)\n",
			i, len(ranked), len(records), outPath)
	}
	return nil
}
