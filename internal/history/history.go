package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry records one completed analysis for the local history log.
type Entry struct {
	AnalyzedAt time.Time `json:"analyzed_at"`
	Modality   string    `json:"modality"`
	Input      string    `json:"input"`
	Score      int       `json:"score"`
	Summary    string    `json:"summary"`
}

// Append stores an entry at the end of the history file, creating the file
// and its directory if necessary.
func Append(path string, entry Entry) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	entries, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		entries = nil
	}
	entries = append(entries, entry)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load returns all stored entries in file order.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Recent returns at most limit entries, newest first.
func Recent(entries []Entry, limit int) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnalyzedAt.After(sorted[j].AnalyzedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Preview shortens free-form input (pasted text) for history display.
func Preview(input string, limit int) string {
	runes := []rune(input)
	if limit <= 0 || len(runes) <= limit {
		return input
	}
	return string(runes[:limit]) + "…"
}
