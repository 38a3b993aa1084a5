package ensemble

import (
	"container/heap"

	"github.com/GeorgeKontos14/FlexFringe/internal/mergetree"
)

// skipQueue is a min-priority queue of merge-tree nodes ordered by ascending
// level, used by TreeRandomEnsemble's Phase II to drain shallow skipped
// subtrees before deep ones — shallow nodes are cheaper to finish and more
// likely to still have room for more than one estimator.
type skipQueue []*mergetree.Node

func (q skipQueue) Len() int            { return len(q) }
func (q skipQueue) Less(i, j int) bool  { return q[i].Level() < q[j].Level() }
func (q skipQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *skipQueue) Push(x interface{}) { *q = append(*q, x.(*mergetree.Node)) }
func (q *skipQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func newSkipQueue() *skipQueue {
	q := &skipQueue{}
	heap.Init(q)
	return q
}

func (q *skipQueue) push(n *mergetree.Node) { heap.Push(q, n) }
func (q *skipQueue) pop() *mergetree.Node   { return heap.Pop(q).(*mergetree.Node) }
func (q *skipQueue) empty() bool            { return q.Len() == 0 }
