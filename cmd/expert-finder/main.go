// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the expert-finder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/expert-finder/internal/logger"
	"github.com/pdiddy/expert-finder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup, with
// environment variable fallback.
var loadedSecrets secrets.Store

// log is the process-wide logger, built in PersistentPreRunE.
var log *zap.Logger

// rootCmd is the base command for the expert-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "expert-finder",
	Short: "Rank and justify expert reviewers for paper queries",
	Long: `expert-finder ranks candidate reviewers against paper queries by embedding
similarity and generates natural-language justifications for the top matches.

The pipeline is a sequence of subcommands: profile builds author profiles from
publication metadata, rank scores and justifies candidates per query,
consolidate turns the raw outputs into canonical CSVs, and agreement compares
the top-N picks across scoring systems.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		debug, _ := cmd.Flags().GetBool("debug")
		log, err = logger.New(jsonLogs, debug)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./expert-finder.yaml or ~/.config/expert-finder/config.yaml)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit JSON logs instead of console logs")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("expert-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "expert-finder"))
		}
	}

	viper.SetEnvPrefix("EXPERT_FINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
