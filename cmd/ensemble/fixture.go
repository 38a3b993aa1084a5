package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
)

// oracleFixture is the JSON shape for a demo/test Merger: an adjacency list
// of reachable states plus an optional preferred-child map for
// BestRefinement. State 0 is always the root. Real deployments wire in
// their own refinement.Merger instead of loading one of these — the APTA
// and its evaluator are out of this module's scope.
type oracleFixture struct {
	Children map[string][]int `json:"children"`
	Best     map[string]int   `json:"best"`
}

func loadFixtureMerger(path string) (*refinement.MockTree, error) {
	if path == "" {
		return nil, fmt.Errorf("no --fixture given; this build has no real refinement.Merger to fall back to")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}

	var raw oracleFixture
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	children := make(map[int][]int, len(raw.Children))
	for k, v := range raw.Children {
		state, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: non-integer state key %q", path, k)
		}
		children[state] = v
	}

	best := make(map[int]int, len(raw.Best))
	for k, v := range raw.Best {
		state, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: non-integer state key %q", path, k)
		}
		best[state] = v
	}

	return refinement.NewMockTree(children, best), nil
}
