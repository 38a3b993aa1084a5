package ensemble

import (
	"context"
	"fmt"
	"log"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
	"github.com/GeorgeKontos14/FlexFringe/internal/rng"
)

// RandomDFA builds n independent clones of merger and drives each to a
// minimal automaton by uniformly selecting among the admissible refinements
// at every step, with no suitability metric. Returned mergers are
// independent of merger and of each other. Non-goal: uniform sampling over
// the space of reachable minimal automata is not guaranteed, only over the
// immediate refinement choice at each step.
func RandomDFA(ctx context.Context, merger refinement.Merger, n int, src *rng.Source) ([]refinement.Merger, error) {
	log.Printf("[RANDOM-DFA] starting random DFA, n=%d", n)
	mergers := make([]refinement.Merger, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return mergers, fmt.Errorf("ensemble: random_dfa: %w", err)
		}
		log.Printf("[RANDOM-DFA] building estimator %d", i)

		clone, err := merger.Copy(ctx)
		if err != nil {
			return mergers, fmt.Errorf("ensemble: random_dfa: estimator %d: copying merger: %w", i, err)
		}

		for {
			possible, err := clone.PossibleRefinements(ctx)
			if err != nil {
				return mergers, fmt.Errorf("ensemble: random_dfa: estimator %d: listing refinements: %w", i, err)
			}
			if len(possible) == 0 {
				break
			}

			choice := possible[src.Intn(len(possible))]
			log.Printf("[RANDOM-DFA] estimator=%d refinement=%s", i, choice.PrintShort())

			if err := choice.Apply(ctx, clone); err != nil {
				return mergers, fmt.Errorf("ensemble: random_dfa: estimator %d: applying %s: %w", i, choice.PrintShort(), err)
			}
			for _, other := range possible {
				if other != choice {
					other.Release()
				}
			}
		}
		log.Printf("[RANDOM-DFA] estimator %d has no more possible merges", i)
		mergers = append(mergers, clone)
	}

	return mergers, nil
}
