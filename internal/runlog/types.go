package runlog

import "time"

// Run is one ensemble driver invocation: which driver, its requested budget,
// how many automata it actually produced, and when.
type Run struct {
	RunID     string
	Driver    string // "greedy", "bagging", "random_dfa", "tree_random_ensemble"
	Budget    int
	Produced  int
	Seed      int64
	CreatedAt time.Time
}

// Model is one emitted automaton, attributed to the run that produced it and,
// when the recorder supplies one, to the merge-tree index path it came from —
// that index_path doubles as the model's provenance chain, since the chain of
// child indices root-to-leaf is itself a parent chain. cmd/ensemble records
// every model, including tree-driver models, with an empty index path and
// level 0.
type Model struct {
	RunID     string
	Ordinal   int // position within the run, 1-based, matching "Automaton k"
	IndexPath []int
	Level     int
	Artifact  string
	CreatedAt time.Time
}
