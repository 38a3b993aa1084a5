package mergetree

import (
	"context"
	"testing"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// a small fixed tree: 0 -> {1, 2}, 1 -> {3, 4}, 2 is a leaf, 3 and 4 are leaves.
func fixture() *refinement.MockTree {
	return refinement.NewMockTree(map[int][]int{
		0: {1, 2},
		1: {3, 4},
	}, nil)
}

func TestInitializeChildrenAndPath(t *testing.T) {
	ctx := context.Background()
	merger := fixture()
	root := NewRoot(4)

	if err := root.InitializeChildren(ctx, merger); err != nil {
		t.Fatalf("InitializeChildren: %v", err)
	}
	if root.IsLeaf() {
		t.Fatalf("root should not be a leaf")
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children()))
	}
	// merger must be left exactly where it was found.
	if merger.CurrentState() != 0 {
		t.Fatalf("merger state leaked across InitializeChildren: %d", merger.CurrentState())
	}

	child1 := root.Children()[0]
	// InitializeChildren assumes merger is already at child1's own state.
	if err := child1.PerformMerges(ctx, merger); err != nil {
		t.Fatalf("PerformMerges child1: %v", err)
	}
	if err := child1.InitializeChildren(ctx, merger); err != nil {
		t.Fatalf("InitializeChildren on child1: %v", err)
	}
	if child1.IsLeaf() {
		t.Fatalf("child1 (state 1) should not be a leaf")
	}
	if err := child1.RevertMerges(ctx, merger); err != nil {
		t.Fatalf("RevertMerges child1: %v", err)
	}

	grandchild := child1.Children()[0] // state 3, a leaf
	if !grandchild.IsLeaf() {
		t.Fatalf("grandchild (state 3) should be a leaf")
	}

	if err := grandchild.PerformMerges(ctx, merger); err != nil {
		t.Fatalf("PerformMerges: %v", err)
	}
	if merger.CurrentState() != 3 {
		t.Fatalf("expected merger at state 3, got %d", merger.CurrentState())
	}
	if err := grandchild.RevertMerges(ctx, merger); err != nil {
		t.Fatalf("RevertMerges: %v", err)
	}
	if merger.CurrentState() != 0 {
		t.Fatalf("expected merger back at state 0, got %d", merger.CurrentState())
	}
}

func TestFindCommonAncestorAndGoto(t *testing.T) {
	ctx := context.Background()
	merger := fixture()
	root := NewRoot(4)

	if err := root.InitializeChildren(ctx, merger); err != nil {
		t.Fatalf("InitializeChildren root: %v", err)
	}
	child1, child2 := root.Children()[0], root.Children()[1] // states 1, 2
	if err := child1.PerformMerges(ctx, merger); err != nil {
		t.Fatalf("PerformMerges child1: %v", err)
	}
	if err := child1.InitializeChildren(ctx, merger); err != nil {
		t.Fatalf("InitializeChildren child1: %v", err)
	}
	if err := child1.RevertMerges(ctx, merger); err != nil {
		t.Fatalf("RevertMerges child1: %v", err)
	}
	leaf3, leaf4 := child1.Children()[0], child1.Children()[1]

	up, down, err := leaf3.FindCommonAncestor(leaf4)
	if err != nil {
		t.Fatalf("FindCommonAncestor(leaf3, leaf4): %v", err)
	}
	if up != 1 || down != 1 {
		t.Fatalf("expected siblings to share a parent one level up/down, got up=%d down=%d", up, down)
	}

	up, down, err = leaf3.FindCommonAncestor(child2)
	if err != nil {
		t.Fatalf("FindCommonAncestor(leaf3, child2): %v", err)
	}
	if up != 2 || down != 1 {
		t.Fatalf("expected up=2 down=1 via root, got up=%d down=%d", up, down)
	}

	if err := leaf3.PerformMerges(ctx, merger); err != nil {
		t.Fatalf("PerformMerges leaf3: %v", err)
	}
	if err := Goto(ctx, merger, leaf3, leaf4); err != nil {
		t.Fatalf("Goto leaf3->leaf4: %v", err)
	}
	if merger.CurrentState() != 4 {
		t.Fatalf("expected merger at state 4 after Goto, got %d", merger.CurrentState())
	}
	if err := leaf4.RevertMerges(ctx, merger); err != nil {
		t.Fatalf("RevertMerges leaf4: %v", err)
	}
	if merger.CurrentState() != 0 {
		t.Fatalf("expected merger back at root, got %d", merger.CurrentState())
	}
}

func TestIDsScopedPerTree(t *testing.T) {
	ctx := context.Background()
	m1, m2 := fixture(), fixture()
	root1, root2 := NewRoot(2), NewRoot(2)

	if err := root1.InitializeChildren(ctx, m1); err != nil {
		t.Fatalf("InitializeChildren root1: %v", err)
	}
	if err := root2.InitializeChildren(ctx, m2); err != nil {
		t.Fatalf("InitializeChildren root2: %v", err)
	}

	// two independently-built trees can assign the same ids without conflict,
	// since each NewRoot call owns its own counter.
	if root1.Children()[0].ID() != root2.Children()[0].ID() {
		t.Fatalf("expected independent trees to both start numbering from the same base, got %d vs %d",
			root1.Children()[0].ID(), root2.Children()[0].ID())
	}

	if _, _, err := root1.Children()[0].FindCommonAncestor(root2.Children()[0]); err == nil {
		t.Fatalf("expected FindCommonAncestor to reject nodes from different trees")
	}
}
