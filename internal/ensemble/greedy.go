// Package ensemble implements the four search drivers over a
// refinement.Merger: Greedy, Bagging, RandomDFA, and TreeRandomEnsemble.
//
// None of the drivers parallelize internally — the source material itself
// lists parallelization as a TODO. context.Context is threaded through
// every entry point purely for cancellation between refinement steps.
package ensemble

import (
	"context"
	"fmt"
	"log"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// Greedy repeatedly applies the Merger's best refinement until none remain,
// returning the full sequence applied, in application order. merger ends up
// positioned at the resulting minimal automaton — callers that want the
// pre-merge state back must Undo the returned refinements themselves, in
// reverse order.
//
// Greedy is the only driver that calls InitializeAfterAddingTraces
// directly on its merger; the other drivers never call it, matching the
// source material.
func Greedy(ctx context.Context, merger refinement.Merger) ([]refinement.Refinement, error) {
	log.Printf("[GREEDY] starting greedy merging")
	if err := merger.InitializeAfterAddingTraces(ctx); err != nil {
		return nil, fmt.Errorf("ensemble: greedy: initializing evaluator: %w", err)
	}

	var applied []refinement.Refinement
	for {
		if err := ctx.Err(); err != nil {
			return applied, fmt.Errorf("ensemble: greedy: %w", err)
		}

		best, err := merger.BestRefinement(ctx)
		if err != nil {
			return applied, fmt.Errorf("ensemble: greedy: selecting best refinement: %w", err)
		}
		if best == nil {
			break
		}

		log.Printf("[GREEDY] applying %s", best.PrintShort())
		if err := best.Apply(ctx, merger); err != nil {
			return applied, fmt.Errorf("ensemble: greedy: applying %s: %w", best.PrintShort(), err)
		}
		applied = append(applied, best)
	}
	log.Printf("[GREEDY] no more possible merges, applied %d refinements", len(applied))
	return applied, nil
}
