package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// The on-disk history is a single JSON document: an array of entries,
// most-recent-first. It is the durable source of truth; in-memory state
// converges to it at startup.

func load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Drop anything a malformed writer left without content.
	out := entries[:0]
	for _, e := range entries {
		if !e.Item.Empty() {
			out = append(out, e)
		}
	}
	return out, nil
}

// save writes the whole history atomically: marshal to a temp file in the
// same directory, then rename over the target. A crash mid-write leaves the
// previous document intact.
func save(path string, entries []Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
