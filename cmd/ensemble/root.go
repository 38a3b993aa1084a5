package main

import (
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	fixturePath string
	dbPath      string
	budget      int
	seed        int64
	outputPath  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Ensemble search drivers over a reversible refinement oracle",
	Long: `ensemble runs one of greedy, bagging, random-dfa, or tree-ensemble
against a Merger oracle, described for demo and test purposes by a JSON
fixture (see --fixture) until a real oracle is wired in by an embedding tool.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		} else {
			cfg = config.Default()
		}

		if cmd.Flags().Changed("budget") {
			cfg.Budget = budget
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputPath = outputPath
		}
		if cmd.Flags().Changed("db") {
			cfg.RunlogPath = dbPath
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "path to a JSON mock-oracle fixture (required)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to a runlog SQLite database; empty disables provenance logging")
	rootCmd.PersistentFlags().IntVar(&budget, "budget", 0, "number of estimators to produce (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "RNG seed (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "path to write the emitted .random.json sink (overrides config)")
}
