// Package replay re-drives a recorded merge-tree index path against a fresh
// Merger, to verify that a previously emitted automaton is reproducible from
// its index path alone. Adapted from a sequential pipeline harness shape
// (originally an update/gate/eval pipeline over recorded interactions); here
// the "pipeline" is just PossibleRefinements -> pick index -> Apply, once per
// path entry.
package replay

import (
	"context"
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// #region types

// Step is one entry of a recorded index path: which admissible refinement
// (by position in PossibleRefinements) was chosen at that level.
type Step struct {
	ChildIndex int
}

// Path is a recorded sequence of choices from the root to a leaf.
type Path []Step

// Result captures the outcome of replaying one path.
type Result struct {
	StepsApplied int
	Artifact     string
	Diverged     bool
	Reason       string
}

// #endregion types

// #region replay

// Replay applies path against merger, one step at a time, and emits the
// resulting automaton if the whole path replays cleanly. merger must start
// at the same position the path was originally recorded from (conventionally
// the root). It diverges (Result.Diverged = true) rather than erroring when
// a step's ChildIndex is out of range for the refinements currently
// admissible — this distinguishes "the oracle's refinement set changed
// between recording and replay" from a hard operational failure.
func Replay(ctx context.Context, merger refinement.Merger, path Path) (Result, error) {
	var result Result

	for i, step := range path {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("replay: %w", err)
		}

		possible, err := merger.PossibleRefinements(ctx)
		if err != nil {
			return result, fmt.Errorf("replay: step %d: listing refinements: %w", i, err)
		}
		if step.ChildIndex < 0 || step.ChildIndex >= len(possible) {
			result.Diverged = true
			result.Reason = fmt.Sprintf("step %d: recorded child index %d out of range for %d admissible refinements",
				i, step.ChildIndex, len(possible))
			return result, nil
		}

		chosen := possible[step.ChildIndex]
		if err := chosen.Apply(ctx, merger); err != nil {
			return result, fmt.Errorf("replay: step %d: applying %s: %w", i, chosen.PrintShort(), err)
		}
		result.StepsApplied++

		for j, other := range possible {
			if j != step.ChildIndex {
				other.Release()
			}
		}
	}

	artifact, err := merger.Emit(ctx)
	if err != nil {
		return result, fmt.Errorf("replay: emitting final automaton: %w", err)
	}
	result.Artifact = artifact
	return result, nil
}

// Summary aggregates the outcome of replaying several paths, e.g. every
// model recorded for one runlog run.
type Summary struct {
	Total     int
	Clean     int
	Diverged  int
	Artifacts []string
}

// Summarize folds a batch of Results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Diverged {
			s.Diverged++
			continue
		}
		s.Clean++
		s.Artifacts = append(s.Artifacts, r.Artifact)
	}
	return s
}

// #endregion replay
