// Package mergetree implements the merge-tree node and path operations that
// back the tree-structured ensemble driver: a node per candidate refinement,
// a live-selection multiset threaded down from the root, and the LCA
// navigation used to move the shared Merger between sibling subtrees without
// a full re-clone per leaf.
package mergetree

import (
	"context"
	"errors"
	"fmt"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// ErrInvariant wraps violations of the merge-tree's structural invariants so
// callers can errors.Is them. Only FindCommonAncestor returns it (nodes from
// different trees, or no common ancestor); leaf/non-leaf disagreements are
// not checked.
var ErrInvariant = errors.New("mergetree: invariant violation")

// idCounter is shared by every node of a single tree, scoped to one driver
// invocation instead of a package-global counter. The source material uses
// a static int id_counter shared across the whole process; per the design
// note on global id counters, each call to NewRoot gets its own counter, so
// every tree numbers its nodes from 0 independently of any other tree. Ids
// are unique only within one tree; two trees reuse the same values.
type idCounter struct{ next int }

func (c *idCounter) take() int {
	id := c.next
	c.next++
	return id
}

// Node is one vertex of the merge tree: parent is a non-owning back-link,
// children are owned. live holds the set of model-slot indices (in [0,N))
// currently reserved at this node; it drains to zero as AllocateLive pushes
// selections down to children.
type Node struct {
	counter *idCounter

	parent   *Node
	children []*Node
	merge    refinement.Refinement // nil at the root

	live []int

	level     int
	id        int
	indexPath []int // child index taken at each level, root to this node
	ancestors []int // ids of every ancestor, root to this node (exclusive of self)

	isLeaf bool
}

// NewRoot builds the root of a fresh merge tree with live selections
// [0, n). Each call to NewRoot starts its own id namespace.
func NewRoot(n int) *Node {
	c := &idCounter{}
	live := make([]int, n)
	for i := range live {
		live[i] = i
	}
	return &Node{
		counter:   c,
		live:      live,
		level:     0,
		id:        c.take(),
		indexPath: nil,
		ancestors: nil,
	}
}

// newChild constructs a non-root node reached from parent by childIndex via
// ref, and determines whether it is a leaf by tentatively applying ref
// against merger, checking for further possible refinements, then undoing.
func newChild(ctx context.Context, parent *Node, ref refinement.Refinement, childIndex int, merger refinement.Merger) (*Node, error) {
	if err := ref.Apply(ctx, merger); err != nil {
		return nil, fmt.Errorf("mergetree: applying candidate refinement: %w", err)
	}
	possible, err := merger.PossibleRefinements(ctx)
	if err != nil {
		_ = ref.Undo(ctx, merger)
		return nil, fmt.Errorf("mergetree: listing refinements at candidate child: %w", err)
	}
	if err := ref.Undo(ctx, merger); err != nil {
		return nil, fmt.Errorf("mergetree: undoing candidate refinement: %w", err)
	}

	indexPath := append(append([]int{}, parent.indexPath...), childIndex)
	ancestors := append(append([]int{}, parent.ancestors...), parent.id)

	return &Node{
		counter:   parent.counter,
		parent:    parent,
		merge:     ref,
		level:     parent.level + 1,
		id:        parent.counter.take(),
		indexPath: indexPath,
		ancestors: ancestors,
		isLeaf:    len(possible) == 0,
	}, nil
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// IsEmpty reports whether n currently has no live selections reserved.
func (n *Node) IsEmpty() bool { return len(n.live) == 0 }

// IsLeaf reports whether n admits no further refinements. The root's
// leaf-ness is unknown until InitializeChildren has been called on it at
// least once (it starts false).
func (n *Node) IsLeaf() bool { return n.isLeaf }

// Level returns n's depth, the root being level 0.
func (n *Node) Level() int { return n.level }

// ID returns n's identifier, unique within its own tree (see idCounter).
func (n *Node) ID() int { return n.id }

// Live returns a copy of n's currently reserved live selections.
func (n *Node) Live() []int {
	out := make([]int, len(n.live))
	copy(out, n.live)
	return out
}

// Children returns n's children, in construction order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// IndexPath returns the sequence of child indices taken from the root down
// to n.
func (n *Node) IndexPath() []int {
	out := make([]int, len(n.indexPath))
	copy(out, n.indexPath)
	return out
}

// Merge returns the refinement that produced n from its parent, or nil if n
// is the root. Callers use this to apply a plain descent step directly
// against a merger already positioned at n's parent, without the cost of a
// full PerformMerges.
func (n *Node) Merge() refinement.Refinement { return n.merge }

// AddLive reserves selection as live at n.
func (n *Node) AddLive(selection int) {
	n.live = append(n.live, selection)
}

// Path returns the refinements from n back to (but excluding) the root, in
// leaf-to-root order: Path()[0] is the refinement that produced n, Path()[last]
// is the one closest to the root.
func (n *Node) Path() []refinement.Refinement {
	var path []refinement.Refinement
	for cur := n; cur.merge != nil; cur = cur.parent {
		path = append(path, cur.merge)
	}
	return path
}

// PathN returns only the nSteps refinements closest to n (a prefix of
// Path()), used to replay or revert a bounded number of steps when
// restoring a Merger via a common ancestor instead of the full path.
func (n *Node) PathN(nSteps int) []refinement.Refinement {
	full := n.Path()
	if nSteps >= len(full) {
		return full
	}
	if nSteps < 0 {
		nSteps = 0
	}
	return full[:nSteps]
}

// PerformMerges applies every refinement from the root down to n, in order,
// against merger.
func (n *Node) PerformMerges(ctx context.Context, merger refinement.Merger) error {
	return n.performMergesN(ctx, merger, -1)
}

// PerformMergesN applies only the nSteps refinements closest to n (root-to-n
// order, from the bottom of the truncated prefix upward), assuming merger is
// already positioned nSteps above n on the path.
func (n *Node) PerformMergesN(ctx context.Context, merger refinement.Merger, nSteps int) error {
	return n.performMergesN(ctx, merger, nSteps)
}

func (n *Node) performMergesN(ctx context.Context, merger refinement.Merger, nSteps int) error {
	path := n.Path()
	if nSteps >= 0 && nSteps < len(path) {
		path = path[:nSteps]
	}
	for i := len(path) - 1; i >= 0; i-- {
		if err := path[i].Apply(ctx, merger); err != nil {
			return fmt.Errorf("mergetree: performing merge at level %d: %w", n.level-i, err)
		}
	}
	return nil
}

// RevertMerges undoes every refinement from n back up to the root, in
// leaf-to-root (LIFO) order.
func (n *Node) RevertMerges(ctx context.Context, merger refinement.Merger) error {
	return n.revertMergesN(ctx, merger, -1)
}

// RevertMergesN undoes only the nSteps refinements closest to n.
func (n *Node) RevertMergesN(ctx context.Context, merger refinement.Merger, nSteps int) error {
	return n.revertMergesN(ctx, merger, nSteps)
}

func (n *Node) revertMergesN(ctx context.Context, merger refinement.Merger, nSteps int) error {
	path := n.Path()
	if nSteps >= 0 && nSteps < len(path) {
		path = path[:nSteps]
	}
	for i := 0; i < len(path); i++ {
		if err := path[i].Undo(ctx, merger); err != nil {
			return fmt.Errorf("mergetree: reverting merge at level %d: %w", n.level-i, err)
		}
	}
	return nil
}

// InitializeChildren populates n's children from merger's possible
// refinements at the automaton state n represents. Unlike PerformMerges,
// this does NOT reposition merger itself: the precondition is that merger
// is already sitting at n's own state (not at n's parent, and not
// necessarily at the root) — the caller is expected to have gotten it there
// via a direct Merge().Apply, a Goto, or a full PerformMerges, whichever is
// cheapest for the traversal in progress. merger is left exactly as it was
// found on return. It is a no-op if n is already known to be a leaf.
func (n *Node) InitializeChildren(ctx context.Context, merger refinement.Merger) error {
	if n.isLeaf {
		return nil
	}
	possible, err := merger.PossibleRefinements(ctx)
	if err != nil {
		return fmt.Errorf("mergetree: listing possible refinements: %w", err)
	}

	children := make([]*Node, 0, len(possible))
	for i, ref := range possible {
		child, err := newChild(ctx, n, ref, i, merger)
		if err != nil {
			return err
		}
		children = append(children, child)
	}
	n.children = children
	if len(n.children) == 0 {
		n.isLeaf = true
	}
	return nil
}

// FindCommonAncestor returns (steps up from n, steps down to other) needed
// to walk from n to other via their lowest common ancestor, without ever
// materializing the ancestor node itself. Both nodes must belong to the same
// tree (same idCounter).
func (n *Node) FindCommonAncestor(other *Node) (upSteps, downSteps int, err error) {
	if n.counter != other.counter {
		return 0, 0, fmt.Errorf("%w: nodes belong to different trees", ErrInvariant)
	}

	nChain := append(append([]int{}, n.ancestors...), n.id)
	oChain := append(append([]int{}, other.ancestors...), other.id)

	i := 0
	for i < len(nChain) && i < len(oChain) && nChain[i] == oChain[i] {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: no common ancestor (not even the root matches)", ErrInvariant)
	}
	lcaDepth := i - 1 // index into the chains, 0-based level of the LCA
	upSteps = n.level - lcaDepth
	downSteps = other.level - lcaDepth
	return upSteps, downSteps, nil
}

// Goto moves merger from n's position to other's position by reverting up to
// their common ancestor and performing merges back down, instead of a full
// RevertMerges+PerformMerges round trip from the root.
func Goto(ctx context.Context, merger refinement.Merger, from, to *Node) error {
	up, down, err := from.FindCommonAncestor(to)
	if err != nil {
		return err
	}
	if err := from.RevertMergesN(ctx, merger, up); err != nil {
		return fmt.Errorf("mergetree: Goto reverting to common ancestor: %w", err)
	}
	if err := to.performMergesN(ctx, merger, down); err != nil {
		return fmt.Errorf("mergetree: Goto performing merges from common ancestor: %w", err)
	}
	return nil
}
