package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/expert-finder/internal/consolidate"
	"github.com/pdiddy/expert-finder/pkg/types"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Turn raw justification outputs into canonical per-query CSVs",
	Long: `Consolidate reads the raw per-query justification files, joins in the
side-channel fitness scores by author name when present, and writes one
canonical quoted CSV per (mode, query) pair to {log-dir}/{mode}/{query}.csv.
Missing input files are skipped with a warning.`,
	RunE: runConsolidate,
}

func init() {
	consolidateCmd.Flags().String("log-dir", "log", "directory holding raw outputs and score files")
	consolidateCmd.Flags().StringSlice("modes", []string{"aggregate", "summarize"}, "aggregation modes to consolidate")
	consolidateCmd.Flags().IntSlice("queries", []int{0, 1, 2, 3}, "query indices to consolidate")

	rootCmd.AddCommand(consolidateCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	logDir, _ := cmd.Flags().GetString("log-dir")
	modeStrs, _ := cmd.Flags().GetStringSlice("modes")
	queryIdxs, _ := cmd.Flags().GetIntSlice("queries")

	modes := make([]types.Mode, 0, len(modeStrs))
	for _, s := range modeStrs {
		mode, err := types.ParseMode(s)
		if err != nil {
			return err
		}
		modes = append(modes, mode)
	}

	cfg := types.ConsolidateConfig{
		LogDir:  logDir,
		Modes:   modes,
		Queries: queryIdxs,
	}
	if err := consolidate.Run(cfg, log); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Consolidated %d mode(s) x %d query(ies) under %s\n",
		len(modes), len(queryIdxs), logDir)
	return nil
}
