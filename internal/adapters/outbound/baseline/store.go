// Package baseline persists accepted diagnostic fingerprints so an analysis
// run can report only findings introduced since the baseline was taken.
package baseline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct{}

// New creates a file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads the project baseline. A missing baseline is an empty set, not an
// error.
func (s *Store) Load(projectPath string) (map[string]bool, error) {
	data, err := os.ReadFile(baselinePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var fingerprints []string
	if err := json.Unmarshal(data, &fingerprints); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(fingerprints))
	for _, fp := range fingerprints {
		set[fp] = true
	}
	return set, nil
}

// Save writes the fingerprints as the new baseline, creating directories as
// needed. Fingerprints are sorted so the file diffs cleanly under version
// control.
func (s *Store) Save(projectPath string, fingerprints []string) error {
	sorted := append([]string(nil), fingerprints...)
	sort.Strings(sorted)

	path := baselinePath(projectPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func baselinePath(projectPath string) string {
	return filepath.Join(projectPath, ".medley", "baseline.json")
}
