package mergetree

import (
	"github.com/GeorgeKontos14/FlexFringe/internal/allocation"
	"github.com/GeorgeKontos14/FlexFringe/internal/rng"
)

// AllocateLive distributes n's live selections across its children (see
// allocation.GenerateAllocation) and drains n's own live set in the
// process. It returns the children left empty (skipped) and the children
// that received at least one selection (selected), in child-construction
// order within each group. InitializeChildren must have been called on n
// first.
func (n *Node) AllocateLive(src *rng.Source) (skipped, selected []*Node) {
	views := make([]allocation.ChildView, len(n.children))
	for i, c := range n.children {
		views[i] = allocation.ChildView{Index: i, IsLeaf: c.isLeaf}
	}

	plan := allocation.GenerateAllocation(n.live, views, src)
	for selectionVal, childIdx := range plan {
		n.children[childIdx].AddLive(selectionVal)
	}
	n.live = nil

	for _, c := range n.children {
		if c.IsEmpty() {
			skipped = append(skipped, c)
		} else {
			selected = append(selected, c)
		}
	}
	return skipped, selected
}
