package refinement

import (
	"context"
	"fmt"
)

// MockTree is a small in-memory oracle used by tests and by the package's
// own examples: it models the merger's reachable states as a fixed tree,
// given upfront as an adjacency list keyed by state id. State 0 is always
// the root. A state with no children is terminal (is_leaf).
//
// It is deliberately the simplest possible thing that satisfies Merger:
// enough to drive every ensemble driver scenario without pulling in a
// real APTA.
type MockTree struct {
	children map[int][]int
	best     map[int]int // state -> preferred child index into children[state]; absent = index 0
	current  int
	applied  []int // stack of states visited via Apply, for LIFO Undo checking
}

// NewMockTree builds a MockTree from an adjacency list. best, if non-nil,
// picks the deterministic BestRefinement child index per state; if nil,
// BestRefinement always returns the first child (or nil at a leaf).
func NewMockTree(children map[int][]int, best map[int]int) *MockTree {
	if best == nil {
		best = map[int]int{}
	}
	return &MockTree{children: children, best: best, current: 0}
}

// Copy returns an independent MockTree positioned at the same state.
func (t *MockTree) Copy(ctx context.Context) (Merger, error) {
	applied := make([]int, len(t.applied))
	copy(applied, t.applied)
	return &MockTree{children: t.children, best: t.best, current: t.current, applied: applied}, nil
}

// BestRefinement returns a mockRefinement for the configured best child, or
// nil at a leaf.
func (t *MockTree) BestRefinement(ctx context.Context) (Refinement, error) {
	kids := t.children[t.current]
	if len(kids) == 0 {
		return nil, nil
	}
	idx := 0
	if b, ok := t.best[t.current]; ok {
		idx = b
	}
	return &mockRefinement{tree: t, fromState: t.current, toState: kids[idx]}, nil
}

// PossibleRefinements returns one mockRefinement per child, in adjacency order.
func (t *MockTree) PossibleRefinements(ctx context.Context) ([]Refinement, error) {
	kids := t.children[t.current]
	out := make([]Refinement, len(kids))
	for i, k := range kids {
		out[i] = &mockRefinement{tree: t, fromState: t.current, toState: k}
	}
	return out, nil
}

// Emit serializes the current state as a minimal JSON object.
func (t *MockTree) Emit(ctx context.Context) (string, error) {
	return fmt.Sprintf(`{"state":%d}`, t.current), nil
}

// InitializeAfterAddingTraces is a no-op for the mock oracle.
func (t *MockTree) InitializeAfterAddingTraces(ctx context.Context) error {
	return nil
}

// CurrentState exposes the mock's internal position, for test assertions.
func (t *MockTree) CurrentState() int {
	return t.current
}

// extractMockTree recovers the underlying *MockTree from a Merger that is
// either a bare *MockTree or a *StochasticMockTree wrapping one, so a
// mockRefinement generated against one can validate itself against the
// other.
func extractMockTree(m Merger) (*MockTree, bool) {
	switch v := m.(type) {
	case *MockTree:
		return v, true
	case *StochasticMockTree:
		return v.MockTree, true
	default:
		return nil, false
	}
}

type mockRefinement struct {
	tree              *MockTree
	fromState, toState int
	released          bool
}

func (r *mockRefinement) Apply(ctx context.Context, m Merger) error {
	t, ok := extractMockTree(m)
	if !ok {
		return fmt.Errorf("mockRefinement.Apply: merger is not a *MockTree or *StochasticMockTree")
	}
	if t.current != r.fromState {
		return fmt.Errorf("mockRefinement.Apply: merger in state %d, refinement generated at state %d", t.current, r.fromState)
	}
	t.applied = append(t.applied, t.current)
	t.current = r.toState
	return nil
}

func (r *mockRefinement) Undo(ctx context.Context, m Merger) error {
	t, ok := extractMockTree(m)
	if !ok {
		return fmt.Errorf("mockRefinement.Undo: merger is not a *MockTree or *StochasticMockTree")
	}
	if t.current != r.toState || len(t.applied) == 0 {
		return fmt.Errorf("mockRefinement.Undo: LIFO violation, merger in state %d", t.current)
	}
	last := t.applied[len(t.applied)-1]
	if last != r.fromState {
		return fmt.Errorf("mockRefinement.Undo: LIFO violation, expected to undo back to %d, stack top is %d", r.fromState, last)
	}
	t.applied = t.applied[:len(t.applied)-1]
	t.current = r.fromState
	return nil
}

func (r *mockRefinement) PrintShort() string {
	return fmt.Sprintf("%d->%d", r.fromState, r.toState)
}

func (r *mockRefinement) Release() {
	r.released = true
}

// StochasticMockTree wraps a MockTree but returns, from BestRefinement, the
// child chosen by the supplied pick function. Used to exercise the
// bagging driver's "stochastic evaluator" assumption: Bagging only produces
// distinct estimators if the evaluator itself varies its answer across
// calls against the same merger.
type StochasticMockTree struct {
	*MockTree
	pick func(n int) int
}

// NewStochasticMockTree wraps tree so BestRefinement picks a random child
// each call via pick(n), which must return an index in [0, n).
func NewStochasticMockTree(tree *MockTree, pick func(n int) int) *StochasticMockTree {
	return &StochasticMockTree{MockTree: tree, pick: pick}
}

func (t *StochasticMockTree) Copy(ctx context.Context) (Merger, error) {
	inner, err := t.MockTree.Copy(ctx)
	if err != nil {
		return nil, err
	}
	return &StochasticMockTree{MockTree: inner.(*MockTree), pick: t.pick}, nil
}

func (t *StochasticMockTree) BestRefinement(ctx context.Context) (Refinement, error) {
	kids := t.children[t.current]
	if len(kids) == 0 {
		return nil, nil
	}
	idx := t.pick(len(kids))
	return &mockRefinement{tree: t.MockTree, fromState: t.current, toState: kids[idx]}, nil
}
