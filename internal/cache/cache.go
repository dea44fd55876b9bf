// Package cache persists the last-seen slot table between polls.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"courtwatch/internal/availability"
)

// Load reads the cached slot table. A missing file means a fresh start and
// returns an empty table with no error.
func Load(path string) ([]availability.Slot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var slots []availability.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return slots, nil
}

// Save writes the slot table atomically: the document lands in a sibling
// temp file first and is renamed over the target, so a crash mid-write never
// leaves a torn state file.
func Save(path string, slots []availability.Slot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	if slots == nil {
		slots = []availability.Slot{}
	}
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
