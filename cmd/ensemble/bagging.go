package main

import (
	"context"
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/ensemble"
	"github.com/GeorgeKontos14/FlexFringe/internal/runlog"
	"github.com/spf13/cobra"
)

var baggingCmd = &cobra.Command{
	Use:   "bagging",
	Short: "Run the bagging driver, emitting one automaton per estimator",
	RunE:  runBagging,
}

func init() {
	rootCmd.AddCommand(baggingCmd)
}

func runBagging(cmd *cobra.Command, args []string) error {
	merger, err := loadFixtureMerger(fixturePath)
	if err != nil {
		return err
	}
	n := effectiveBudget()

	report, err := ensemble.Bagging(context.Background(), merger, n)
	if err != nil {
		return fmt.Errorf("bagging: %w", err)
	}

	fmt.Printf("produced %d estimators\n", len(report.Artifacts))
	for i, count := range report.Applied {
		fmt.Printf("  estimator %d: %d refinements applied\n", i+1, count)
	}

	if cfg.RunlogPath != "" {
		if err := logBatch("bagging", n, report.Artifacts); err != nil {
			return err
		}
	}
	return nil
}

func effectiveBudget() int {
	if cfg.Budget > 0 {
		return cfg.Budget
	}
	return 10
}

// logBatch records one run and its artifacts in the runlog. Models are stored
// with an empty index path and level 0; merge-tree paths are not recorded.
func logBatch(driver string, budget int, artifacts []string) error {
	store, err := runlog.Open(cfg.RunlogPath)
	if err != nil {
		return fmt.Errorf("%s: opening runlog: %w", driver, err)
	}
	defer store.Close()

	runID, err := store.BeginRun(driver, budget, cfg.Seed)
	if err != nil {
		return fmt.Errorf("%s: beginning run: %w", driver, err)
	}
	for i, artifact := range artifacts {
		if err := store.RecordModel(runID, i+1, nil, 0, artifact); err != nil {
			return fmt.Errorf("%s: recording model %d: %w", driver, i+1, err)
		}
	}
	return nil
}
