package main

import (
	"context"
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/ensemble"
	"github.com/GeorgeKontos14/FlexFringe/internal/runlog"
	"github.com/spf13/cobra"
)

var greedyCmd = &cobra.Command{
	Use:   "greedy",
	Short: "Run the greedy driver once, printing the refinement sequence applied",
	RunE:  runGreedy,
}

func init() {
	rootCmd.AddCommand(greedyCmd)
}

func runGreedy(cmd *cobra.Command, args []string) error {
	merger, err := loadFixtureMerger(fixturePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	applied, err := ensemble.Greedy(ctx, merger)
	if err != nil {
		return fmt.Errorf("greedy: %w", err)
	}

	artifact, err := merger.Emit(ctx)
	if err != nil {
		return fmt.Errorf("greedy: emitting result: %w", err)
	}

	fmt.Printf("applied %d refinements\n%s\n", len(applied), artifact)

	if cfg.RunlogPath != "" {
		if err := logSingleRun("greedy", 1, artifact); err != nil {
			return err
		}
	}
	return nil
}

func logSingleRun(driver string, produced int, artifact string) error {
	store, err := runlog.Open(cfg.RunlogPath)
	if err != nil {
		return fmt.Errorf("%s: opening runlog: %w", driver, err)
	}
	defer store.Close()

	runID, err := store.BeginRun(driver, cfg.Budget, cfg.Seed)
	if err != nil {
		return fmt.Errorf("%s: beginning run: %w", driver, err)
	}
	if err := store.RecordModel(runID, 1, nil, 0, artifact); err != nil {
		return fmt.Errorf("%s: recording model: %w", driver, err)
	}
	return nil
}
