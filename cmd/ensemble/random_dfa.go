package main

import (
	"context"
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/ensemble"
	"github.com/GeorgeKontos14/FlexFringe/internal/rng"
	"github.com/spf13/cobra"
)

var randomDFACmd = &cobra.Command{
	Use:   "random-dfa",
	Short: "Run the random-DFA driver, building n independent unguided automata",
	RunE:  runRandomDFA,
}

func init() {
	rootCmd.AddCommand(randomDFACmd)
}

func runRandomDFA(cmd *cobra.Command, args []string) error {
	merger, err := loadFixtureMerger(fixturePath)
	if err != nil {
		return err
	}
	n := effectiveBudget()
	src := rng.New(cfg.Seed)

	ctx := context.Background()
	mergers, err := ensemble.RandomDFA(ctx, merger, n, src)
	if err != nil {
		return fmt.Errorf("random-dfa: %w", err)
	}

	var artifacts []string
	for i, m := range mergers {
		artifact, err := m.Emit(ctx)
		if err != nil {
			return fmt.Errorf("random-dfa: emitting estimator %d: %w", i, err)
		}
		artifacts = append(artifacts, artifact)
	}
	fmt.Printf("produced %d estimators\n", len(artifacts))

	if cfg.RunlogPath != "" {
		if err := logBatch("random_dfa", n, artifacts); err != nil {
			return err
		}
	}
	return nil
}
