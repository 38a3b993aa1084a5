package ensemble

import (
	"context"
	"testing"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
	"github.com/GeorgeKontos14/FlexFringe/internal/rng"
)

func TestRandomDFAProducesNIndependentLeaves(t *testing.T) {
	ctx := context.Background()
	merger := refinement.NewMockTree(map[int][]int{
		0: {1, 2},
		1: {3, 4},
	}, nil)

	mergers, err := RandomDFA(ctx, merger, 5, rng.New(11))
	if err != nil {
		t.Fatalf("RandomDFA: %v", err)
	}
	if len(mergers) != 5 {
		t.Fatalf("expected 5 estimators, got %d", len(mergers))
	}
	if merger.CurrentState() != 0 {
		t.Fatalf("expected original merger untouched, state=%d", merger.CurrentState())
	}
	for i, m := range mergers {
		mt, ok := m.(*refinement.MockTree)
		if !ok {
			t.Fatalf("estimator %d: unexpected merger type", i)
		}
		if s := mt.CurrentState(); s != 2 && s != 3 && s != 4 {
			t.Errorf("estimator %d: expected a leaf state, got %d", i, s)
		}
	}
}
