package indexer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stateFile = "state.json"

// IndexState tracks which documents have been indexed, their content hashes,
// and the embedder that produced the vectors.
type IndexState struct {
	Embedder    string            `json:"embedder"`
	Dimensions  int               `json:"dimensions"`
	Hashes      map[string]string `json:"hashes"`
	LastUpdated time.Time         `json:"last_updated"`
}

// LoadState reads index state from state.json inside dir. A missing file
// yields an empty state.
func LoadState(dir string) (*IndexState, error) {
	data, err := os.ReadFile(filepath.Join(dir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &IndexState{Hashes: make(map[string]string)}, nil
		}
		return nil, err
	}

	var state IndexState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Hashes == nil {
		state.Hashes = make(map[string]string)
	}
	return &state, nil
}

// SaveState writes the index state to state.json inside dir.
func (s *IndexState) SaveState(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	s.LastUpdated = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, stateFile), data, 0o644)
}

// IsChanged returns true if the document's content hash differs from the stored hash.
func (s *IndexState) IsChanged(id, contentHash string) bool {
	stored, ok := s.Hashes[id]
	if !ok {
		return true
	}
	return stored != contentHash
}

// Compatible reports whether vectors in the index came from the same
// embedder configuration.
func (s *IndexState) Compatible(name string, dims int) bool {
	return s.Embedder == name && s.Dimensions == dims
}
