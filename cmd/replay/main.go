package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/GeorgeKontos14/FlexFringe/internal/refinement"
	"github.com/GeorgeKontos14/FlexFringe/internal/replay"
	"github.com/GeorgeKontos14/FlexFringe/internal/runlog"
	_ "modernc.org/sqlite"
)

// #region main

// replay re-drives one or more recorded merge-tree index paths against the
// mock oracle described by --fixture, to verify they still reproduce the
// automaton recorded for them. A single-mode tool (unlike cmd/ensemble's
// four drivers), so it keeps a flat flag.Parse() shape instead of cobra.
func main() {
	oraclePath := flag.String("fixture", "", "path to a JSON oracle fixture (see cmd/ensemble/fixture.go)")
	pathsFile := flag.String("paths", "", "path to a JSON replay fixture (path mode)")
	dbPath := flag.String("db", "", "path to a runlog.db, replays every model of --run (DB mode)")
	runID := flag.String("run", "", "run id to replay from --db")
	flag.Parse()

	if *oraclePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture oracle.json --paths paths.json")
		fmt.Fprintln(os.Stderr, "       replay --fixture oracle.json --db runlog.db --run <run-id>")
		os.Exit(2)
	}
	if (*pathsFile == "" && *dbPath == "") || (*pathsFile != "" && *dbPath != "") {
		fmt.Fprintln(os.Stderr, "exactly one of --paths or --db is required")
		os.Exit(2)
	}

	var exitCode int
	if *pathsFile != "" {
		exitCode = runFixtureMode(*oraclePath, *pathsFile)
	} else {
		exitCode = runDBMode(*oraclePath, *dbPath, *runID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region oracle-loading

type oracleFixture struct {
	Children map[string][]int `json:"children"`
	Best     map[string]int   `json:"best"`
}

func loadOracle(path string) (*refinement.MockTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read oracle fixture %s: %w", path, err)
	}
	var raw oracleFixture
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse oracle fixture %s: %w", path, err)
	}

	children := make(map[int][]int, len(raw.Children))
	for k, v := range raw.Children {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("non-integer state key %q", k)
		}
		children[n] = v
	}
	best := make(map[int]int, len(raw.Best))
	for k, v := range raw.Best {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("non-integer state key %q", k)
		}
		best[n] = v
	}
	return refinement.NewMockTree(children, best), nil
}

// #endregion oracle-loading

// #region fixture-mode

func runFixtureMode(oraclePath, pathsPath string) int {
	oracle, err := loadOracle(oraclePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load oracle: %v\n", err)
		return 2
	}

	f, err := replay.LoadFixture(pathsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load paths: %v\n", err)
		return 2
	}

	ctx := context.Background()
	var results []replay.Result
	var labels []string
	for label, fp := range f.Paths {
		clone, err := oracle.Copy(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "copy oracle for %s: %v\n", label, err)
			return 2
		}
		result, err := replay.Replay(ctx, clone, fp.ToPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay %s: %v\n", label, err)
			return 2
		}
		labels = append(labels, label)
		results = append(results, result)
	}

	return printResults(labels, results)
}

// #endregion fixture-mode

// #region db-mode

func runDBMode(oraclePath, dbPath, runID string) int {
	oracle, err := loadOracle(oraclePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load oracle: %v\n", err)
		return 2
	}
	if runID == "" {
		fmt.Fprintln(os.Stderr, "--run is required with --db")
		return 2
	}

	store, err := runlog.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open runlog: %v\n", err)
		return 2
	}
	defer store.Close()

	models, err := store.ListModels(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list models: %v\n", err)
		return 2
	}
	if len(models) == 0 {
		fmt.Fprintf(os.Stderr, "no models recorded for run %s\n", runID)
		return 2
	}

	ctx := context.Background()
	var results []replay.Result
	var labels []string
	for _, m := range models {
		clone, err := oracle.Copy(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "copy oracle for model %d: %v\n", m.Ordinal, err)
			return 2
		}
		path := replay.FromIndexPath(m.IndexPath).ToPath()
		result, err := replay.Replay(ctx, clone, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay model %d: %v\n", m.Ordinal, err)
			return 2
		}
		labels = append(labels, fmt.Sprintf("automaton-%d", m.Ordinal))
		results = append(results, result)
	}

	return printResults(labels, results)
}

// #endregion db-mode

// #region output

func printResults(labels []string, results []replay.Result) int {
	fmt.Printf("%-20s  %8s  %10s  %s\n", "Model", "Steps", "Diverged", "Reason")
	fmt.Printf("%-20s  %8s  %10s  %s\n", "--------------------", "--------", "----------", "------")

	diverged := 0
	for i, r := range results {
		label := fmt.Sprintf("result-%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Printf("%-20s  %8d  %10t  %s\n", label, r.StepsApplied, r.Diverged, r.Reason)
		if r.Diverged {
			diverged++
		}
	}

	summary := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d clean, %d diverged\n", summary.Total, summary.Clean, summary.Diverged)
	if diverged > 0 {
		return 1
	}
	return 0
}

// #endregion output
