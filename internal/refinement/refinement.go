// Package refinement defines the oracle/merger contract the ensemble core
// is built against. The APTA data structure, the evaluator that scores
// candidate merges, and the concrete merge/sink refinements themselves are
// external collaborators — this package only describes the interface the
// rest of the module consumes.
package refinement

import "context"

// Refinement is a single reversible operation on a Merger: a state merge or
// a red-sink marking. It is deterministic given the Merger state it was
// generated against.
//
// Undo is only valid immediately after Apply, and refinements obtained from
// the same Merger must be undone in LIFO order — the same discipline the
// oracle enforces natively.
type Refinement interface {
	// Apply mutates m toward the successor state this refinement represents.
	// Only valid when m is in the state where the refinement was generated.
	Apply(ctx context.Context, m Merger) error

	// Undo reverses Apply. Only valid immediately after Apply, against the
	// same Merger, with no intervening un-undone refinement applied after it.
	Undo(ctx context.Context, m Merger) error

	// PrintShort returns a short human-readable description, for logging.
	PrintShort() string

	// Release frees any resources this refinement owns. Called once, after
	// its last use: after its final Undo, or without it ever being applied
	// when a caller discards it unchosen. It may never be called if the
	// caller keeps the merger in its post-Apply state.
	Release()
}

// Merger is the opaque handle to the mutable APTA + evaluator context. All
// drivers in this module operate exclusively through this interface; they
// never reach into the APTA or evaluator directly.
type Merger interface {
	// Copy returns an independent clone whose future mutations do not
	// affect the receiver.
	Copy(ctx context.Context) (Merger, error)

	// BestRefinement returns the evaluator's preferred refinement, or nil if
	// none is admissible.
	BestRefinement(ctx context.Context) (Refinement, error)

	// PossibleRefinements returns the full admissible set, in a stable order
	// for a given Merger state. Empty when the state is terminal.
	PossibleRefinements(ctx context.Context) ([]Refinement, error)

	// Emit serializes the current automaton to a string artifact.
	Emit(ctx context.Context) (string, error)

	// InitializeAfterAddingTraces is the one-time evaluator setup hook.
	// It is invoked by Greedy only — RandomDFA, Bagging (which calls
	// Greedy) and TreeRandomEnsemble do not call it directly on their own
	// merger. This mirrors the source material's behavior.
	InitializeAfterAddingTraces(ctx context.Context) error
}
