package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSinkNumbersAutomataInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.random.json")

	sink := NewFileSink(path)
	if err := sink.Add(`{"states":1}`); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := sink.Add(`{"states":2}`); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if _, ok := out["Automaton 1"]; !ok {
		t.Errorf("missing Automaton 1 key")
	}
	if _, ok := out["Automaton 2"]; !ok {
		t.Errorf("missing Automaton 2 key")
	}
	if len(out) != 2 {
		t.Errorf("expected exactly 2 entries, got %d", len(out))
	}
}

func TestFileSinkPreservesOrderPastTenArtifacts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.random.json")

	sink := NewFileSink(path)
	for i := 1; i <= 11; i++ {
		if err := sink.Add(fmt.Sprintf(`{"states":%d}`, i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(data)

	// A lexicographically-sorted map encoding would place "Automaton 10"
	// and "Automaton 11" ahead of "Automaton 2" through "Automaton 9".
	// The raw byte order must instead be strictly ascending 1..11.
	prevIdx := -1
	for k := 1; k <= 11; k++ {
		key := fmt.Sprintf(`"Automaton %d"`, k)
		idx := strings.Index(text, key)
		if idx == -1 {
			t.Fatalf("missing key %s in output", key)
		}
		if idx <= prevIdx {
			t.Fatalf("key %s out of order: found at byte %d, previous key found at byte %d", key, idx, prevIdx)
		}
		prevIdx = idx
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out) != 11 {
		t.Fatalf("expected 11 entries, got %d", len(out))
	}
}

func TestFileSinkLeavesNoTempFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.random.json")

	sink := NewFileSink(path)
	_ = sink.Add(`{"states":1}`)
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 file in output dir, got %d", len(entries))
	}
}

func TestMemorySinkCollectsArtifacts(t *testing.T) {
	sink := NewMemorySink()
	_ = sink.Add("a")
	_ = sink.Add("b")
	if len(sink.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(sink.Artifacts))
	}
}
