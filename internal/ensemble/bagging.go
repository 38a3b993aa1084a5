package ensemble

import (
	"context"
	"fmt"
	"log"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// BaggingReport is the result of one Bagging invocation: one emitted
// artifact and one applied-refinement count per estimator, in run order.
type BaggingReport struct {
	Artifacts []string
	Applied   []int
}

// Bagging runs Greedy n times against the same merger, emitting the
// resulting automaton after each run and then undoing every refinement it
// applied (LIFO) before the next run starts, so merger is left exactly as it
// was found.
//
// Bagging relies entirely on merger.BestRefinement returning a different
// answer across runs — the resampling itself is the evaluator's concern, not
// this driver's; see refinement.Merger and the mock StochasticMockTree used
// to exercise this in tests.
func Bagging(ctx context.Context, merger refinement.Merger, n int) (BaggingReport, error) {
	log.Printf("[BAGGING] starting bagging, n=%d", n)
	var report BaggingReport

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ensemble: bagging: %w", err)
		}

		applied, err := Greedy(ctx, merger)
		if err != nil {
			return report, fmt.Errorf("ensemble: bagging: estimator %d: %w", i, err)
		}

		artifact, err := merger.Emit(ctx)
		if err != nil {
			return report, fmt.Errorf("ensemble: bagging: estimator %d: emitting: %w", i, err)
		}
		report.Artifacts = append(report.Artifacts, artifact)
		report.Applied = append(report.Applied, len(applied))

		for j := len(applied) - 1; j >= 0; j-- {
			if err := applied[j].Undo(ctx, merger); err != nil {
				return report, fmt.Errorf("ensemble: bagging: estimator %d: undoing refinement %d: %w", i, j, err)
			}
		}
		for _, ref := range applied {
			ref.Release()
		}
	}

	log.Printf("[BAGGING] ended bagging, %d estimators", len(report.Artifacts))
	return report, nil
}
