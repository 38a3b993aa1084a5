package runlog

import (
	"path/filepath"
	"testing"
)

func TestBeginRunAndRecordModel(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	runID, err := store.BeginRun("tree_random_ensemble", 5, 42)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatalf("expected a non-empty run id")
	}

	if err := store.RecordModel(runID, 1, []int{0, 1}, 2, `{"states":1}`); err != nil {
		t.Fatalf("RecordModel: %v", err)
	}
	if err := store.RecordModel(runID, 2, []int{0, 2}, 2, `{"states":2}`); err != nil {
		t.Fatalf("RecordModel (second): %v", err)
	}

	run, err := store.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Produced != 2 {
		t.Fatalf("expected produced=2 after two models, got %d", run.Produced)
	}
	if run.Driver != "tree_random_ensemble" {
		t.Errorf("expected driver recorded, got %q", run.Driver)
	}

	models, err := store.ListModels(runID)
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].Ordinal != 1 || models[1].Ordinal != 2 {
		t.Errorf("expected models in ordinal order, got %d, %d", models[0].Ordinal, models[1].Ordinal)
	}
	if len(models[1].IndexPath) != 2 || models[1].IndexPath[1] != 2 {
		t.Errorf("expected index path round-tripped, got %v", models[1].IndexPath)
	}
}

func TestListRunsOrdersNewestFirst(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		if _, err := store.BeginRun("greedy", 1, int64(i)); err != nil {
			t.Fatalf("BeginRun %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt.After(runs[i-1].CreatedAt) {
			t.Errorf("run %d (%v) is newer than run %d (%v)", i, runs[i].CreatedAt, i-1, runs[i-1].CreatedAt)
		}
	}
}
