package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded replay: a run's
// driver name and every path recorded for it, keyed by the model's ordinal
// in the run.
type Fixture struct {
	Description string                 `json:"description"`
	Driver      string                 `json:"driver"`
	Paths       map[string]FixturePath `json:"paths"`
}

// FixturePath is the JSON-serializable form of a Path.
type FixturePath struct {
	Steps []int `json:"steps"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("replay: parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToPath converts a FixturePath to a domain Path.
func (fp FixturePath) ToPath() Path {
	out := make(Path, len(fp.Steps))
	for i, childIndex := range fp.Steps {
		out[i] = Step{ChildIndex: childIndex}
	}
	return out
}

// FromIndexPath builds a FixturePath from a merge-tree index path (the same
// []int a mergetree.Node.IndexPath() or a runlog.Model.IndexPath returns).
func FromIndexPath(indexPath []int) FixturePath {
	steps := make([]int, len(indexPath))
	copy(steps, indexPath)
	return FixturePath{Steps: steps}
}

// #endregion fixture-loader
