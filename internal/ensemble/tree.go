package ensemble

import (
	"context"
	"fmt"
	"log"

	"github.com/GeorgeKontos14/FlexFringe/internal/emit"
	"github.com/GeorgeKontos14/FlexFringe/internal/mergetree"
	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
	"github.com/GeorgeKontos14/FlexFringe/internal/rng"
)

// TreeEnsembleReport summarizes one TreeRandomEnsemble run.
type TreeEnsembleReport struct {
	// Produced is the number of automata actually emitted. It can be less
	// than the requested n when the tree runs out of distinct leaves
	// first — no uniqueness or exact-count guarantee is made.
	Produced int
}

// TreeRandomEnsemble builds n automata by walking a merge tree rooted at
// merger's current state, mutating merger in place rather than cloning it
// per candidate leaf. merger must be positioned at its initial state on
// entry; it is restored to that state before returning.
//
// Phase I is a depth-first, LIFO-stack-driven descent: plain one-level
// steps (no backtracking since the last visited node) apply the child's
// merge directly against merger — O(1) in the number of refinements
// touched. Only after a leaf is emitted does the next popped node require
// backtracking, at which point Goto/FindCommonAncestor repositions merger
// via their lowest common ancestor instead of unwinding all the way to the
// root. Every non-leaf node visited has its live selections spread across
// its children (internal/mergetree.AllocateLive); children left with no
// live selections are pushed onto a min-priority skip queue (keyed by
// level) for Phase II, and children that received at least one selection
// are pushed onto the descent stack.
//
// Phase II drains the skip queue, shallowest first: each skipped node is
// positioned via one full PerformMerges, then descends a single
// randomly-chosen path one level at a time (again applying each step's
// merge directly), pushing its other children back onto the skip queue
// for remaining estimators, until it reaches a leaf; it is then emitted and
// fully reverted.
func TreeRandomEnsemble(ctx context.Context, merger refinement.Merger, n int, sink emit.Sink, src *rng.Source) (TreeEnsembleReport, error) {
	log.Printf("[TREE] starting tree random ensemble, n=%d", n)
	var report TreeEnsembleReport
	skipped := newSkipQueue()

	root := mergetree.NewRoot(n)

	emitLeaf := func(node *mergetree.Node) error {
		artifact, err := merger.Emit(ctx)
		if err != nil {
			return fmt.Errorf("ensemble: tree_random_ensemble: emitting leaf: %w", err)
		}
		if err := sink.Add(artifact); err != nil {
			return fmt.Errorf("ensemble: tree_random_ensemble: adding artifact to sink: %w", err)
		}
		report.Produced++
		return nil
	}

	log.Printf("[TREE] entering phase I")
	next := []*mergetree.Node{root} // LIFO stack
	var prev *mergetree.Node
	reset := false
	for len(next) > 0 && report.Produced < n {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: %w", err)
		}

		node := next[len(next)-1]
		next = next[:len(next)-1]

		switch {
		case prev == nil:
			// First node visited is the root; merger is already there.
		case reset:
			if err := mergetree.Goto(ctx, merger, prev, node); err != nil {
				return report, fmt.Errorf("ensemble: tree_random_ensemble: phase I: restoring via common ancestor: %w", err)
			}
		case node.Merge() != nil:
			if err := node.Merge().Apply(ctx, merger); err != nil {
				return report, fmt.Errorf("ensemble: tree_random_ensemble: phase I: descending: %w", err)
			}
		}

		possible, err := merger.PossibleRefinements(ctx)
		if err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: phase I: listing refinements: %w", err)
		}

		if len(possible) == 0 {
			if err := emitLeaf(node); err != nil {
				return report, err
			}
			reset = true
		} else {
			if err := node.InitializeChildren(ctx, merger); err != nil {
				return report, fmt.Errorf("ensemble: tree_random_ensemble: phase I: initializing children: %w", err)
			}
			skippedChildren, selectedChildren := node.AllocateLive(src)
			for _, child := range skippedChildren {
				skipped.push(child)
			}
			next = append(next, selectedChildren...)
			reset = false
		}

		prev = node
	}

	if prev != nil {
		if err := prev.RevertMerges(ctx, merger); err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: phase I: final revert: %w", err)
		}
	}
	log.Printf("[TREE] phase I complete, produced=%d", report.Produced)

	log.Printf("[TREE] entering phase II, produced=%d target=%d", report.Produced, n)
	for report.Produced < n && !skipped.empty() {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: %w", err)
		}

		current := skipped.pop()
		if err := current.PerformMerges(ctx, merger); err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: phase II: positioning merger: %w", err)
		}

		for !current.IsLeaf() {
			if err := current.InitializeChildren(ctx, merger); err != nil {
				return report, fmt.Errorf("ensemble: tree_random_ensemble: phase II: initializing children: %w", err)
			}
			if current.IsLeaf() {
				break
			}

			children := current.Children()
			chosen := src.Intn(len(children))
			remaining := n - report.Produced
			for j, child := range children {
				if j == chosen {
					continue
				}
				if skipped.Len() >= remaining {
					break
				}
				skipped.push(child)
			}

			if err := children[chosen].Merge().Apply(ctx, merger); err != nil {
				return report, fmt.Errorf("ensemble: tree_random_ensemble: phase II: descending: %w", err)
			}
			current = children[chosen]
		}

		if err := emitLeaf(current); err != nil {
			return report, err
		}
		if err := current.RevertMerges(ctx, merger); err != nil {
			return report, fmt.Errorf("ensemble: tree_random_ensemble: phase II: reverting: %w", err)
		}
	}

	log.Printf("[TREE] ended tree random ensemble, produced=%d", report.Produced)
	return report, nil
}
