package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/expert-finder/internal/agreement"
	"github.com/pdiddy/expert-finder/pkg/types"
)

var agreementCmd = &cobra.Command{
	Use:   "agreement",
	Short: "Compare top-N candidate picks across scoring systems",
	Long: `Agreement loads each system's consolidated top-N name list for every query
and computes the pairwise overlap. The report has one row per query, one
column per system pair, and a trailing average row.`,
	RunE: runAgreement,
}

func init() {
	agreementCmd.Flags().String("log-dir", "log", "directory holding per-system consolidated CSVs")
	agreementCmd.Flags().StringSlice("systems", []string{"gpt", "gemini", "summarize", "aggregate"}, "scoring systems to compare")
	agreementCmd.Flags().StringSlice("queries", []string{"0", "1", "2", "3"}, "query IDs to compare")
	agreementCmd.Flags().Int("top-n", 10, "size of each compared name set")
	agreementCmd.Flags().String("output", "agreement_report.csv", "report output path")

	rootCmd.AddCommand(agreementCmd)
}

func runAgreement(cmd *cobra.Command, args []string) error {
	logDir, _ := cmd.Flags().GetString("log-dir")
	systems, _ := cmd.Flags().GetStringSlice("systems")
	queryIDs, _ := cmd.Flags().GetStringSlice("queries")
	topN, _ := cmd.Flags().GetInt("top-n")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.AgreementConfig{
		LogDir:     logDir,
		Systems:    systems,
		QueryIDs:   queryIDs,
		TopN:       topN,
		OutputPath: output,
	}
	report, err := agreement.ComputeAgreement(cfg, log)
	if err != nil {
		return err
	}
	if err := agreement.WriteReport(output, report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Agreement report written to %s (%d queries, %d pairs)\n",
		output, len(report.Rows), len(report.Pairs))
	return nil
}
