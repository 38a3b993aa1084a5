// Package emit writes the automata produced by an ensemble run to a single
// artifact file, numbered "Automaton 1", "Automaton 2", ... in emission
// order, mirroring the source material's .random.json sink.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Sink accepts emitted automaton artifacts one at a time and flushes the
// accumulated set on Close.
type Sink interface {
	Add(artifact string) error
	Close() error
}

// fileSink accumulates artifacts in memory and writes them out as a single
// JSON object on Close, written atomically via a temp file + rename so a
// crash mid-run never leaves a partially-written sink file behind.
type fileSink struct {
	path      string
	artifacts []string
}

// NewFileSink returns a Sink that writes to path on Close. path conventionally
// ends in ".random.json".
func NewFileSink(path string) Sink {
	return &fileSink{path: path}
}

func (s *fileSink) Add(artifact string) error {
	s.artifacts = append(s.artifacts, artifact)
	return nil
}

func (s *fileSink) Close() error {
	encoded, err := encodeArtifacts(s.artifacts)
	if err != nil {
		return fmt.Errorf("emit: encoding sink contents: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".emit-*.tmp")
	if err != nil {
		return fmt.Errorf("emit: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("emit: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("emit: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("emit: renaming temp file into place: %w", err)
	}
	return nil
}

// encodeArtifacts serializes artifacts into a single JSON object keyed by
// ascending "Automaton k", preserving emission order. encoding/json sorts
// map keys lexicographically ("Automaton 10" sorts before "Automaton 2"),
// so a map-based encoding would scramble the required numeric ordering once
// a run produces 10 or more artifacts; this builds the object by hand
// instead.
func encodeArtifacts(artifacts []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, artifact := range artifacts {
		key, err := json.Marshal(fmt.Sprintf("Automaton %d", i+1))
		if err != nil {
			return nil, fmt.Errorf("marshaling key %d: %w", i+1, err)
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(artifact)
	}
	if len(artifacts) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// MemorySink collects artifacts without touching disk, for tests and for
// callers that want the raw artifact list instead of a file.
type MemorySink struct {
	Artifacts []string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Add(artifact string) error {
	s.Artifacts = append(s.Artifacts, artifact)
	return nil
}

func (s *MemorySink) Close() error { return nil }
