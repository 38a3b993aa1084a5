// Package allocation implements the balanced live-selection allocation
// policy used by the tree random ensemble driver: splitting a node's live
// selections across its children, favoring width (unused leaves) before
// reusing non-leaf children.
package allocation

import "github.com/GeorgeKontos14/FlexFringe/internal/rng"

// ChildView is the minimal view of a child a caller needs to allocate
// against: its index into the parent's children slice and whether it is a
// leaf.
type ChildView struct {
	Index  int
	IsLeaf bool
}

// GenerateAllocation assigns each live selection to exactly one child index,
// following the source policy: if any child is a non-leaf, selections are
// spread across the full target list (every non-leaf and every leaf index,
// shuffled together), cycling back through the non-leaf indices if there are more
// selections than children so every leaf is used at most once. If every
// child is a leaf, at most len(children) selections are allocated — leftover
// live selections are intentionally dropped (a documented non-goal; see
// spec's non-uniqueness guarantee).
//
// The returned map is keyed by live selection, valued by child index.
func GenerateAllocation(live []int, children []ChildView, src *rng.Source) map[int]int {
	allocation := make(map[int]int, len(live))
	if len(children) == 0 || len(live) == 0 {
		return allocation
	}

	var leafIdx, nonLeafIdx []int
	for _, c := range children {
		if c.IsLeaf {
			leafIdx = append(leafIdx, c.Index)
		} else {
			nonLeafIdx = append(nonLeafIdx, c.Index)
		}
	}

	shuffledLive := rng.ShuffleInts(src, live)

	if len(nonLeafIdx) == 0 {
		shuffledLeaves := rng.ShuffleInts(src, leafIdx)
		count := len(shuffledLive)
		if len(shuffledLeaves) < count {
			count = len(shuffledLeaves)
		}
		for i := 0; i < count; i++ {
			allocation[shuffledLive[i]] = shuffledLeaves[i]
		}
		return allocation
	}

	available := make([]int, 0, len(nonLeafIdx)+len(leafIdx))
	available = append(available, nonLeafIdx...)
	available = append(available, leafIdx...)
	available = rng.ShuffleInts(src, available)

	for len(available) < len(shuffledLive) {
		extra := rng.ShuffleInts(src, nonLeafIdx)
		for _, idx := range extra {
			available = append(available, idx)
			if len(available) >= len(shuffledLive) {
				break
			}
		}
	}

	for i, selection := range shuffledLive {
		allocation[selection] = available[i]
	}
	return allocation
}
