package state

import (
	"fmt"
	"sync"
	"time"

	"courtwatch/internal/availability"
)

// maxRecentChanges bounds the change history kept for the UI.
const maxRecentChanges = 50

// Change records one notified availability change.
type Change struct {
	Key  string
	Seen time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Slots               []availability.Slot
	HasData             bool
	RecentChanges       []Change
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the feed has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored slot table. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(slots []availability.Slot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Slots = cloneSlots(slots)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// RecordChanges appends notified change keys to the history, newest first.
func (s *Store) RecordChanges(keys []string, seen time.Time) {
	if len(keys) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := make([]Change, 0, len(keys)+len(s.snapshot.RecentChanges))
	for _, k := range keys {
		changes = append(changes, Change{Key: k, Seen: seen})
	}
	changes = append(changes, s.snapshot.RecentChanges...)
	if len(changes) > maxRecentChanges {
		changes = changes[:maxRecentChanges]
	}
	s.snapshot.RecentChanges = changes
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Slots = cloneSlots(s.snapshot.Slots)
	snap.RecentChanges = cloneChanges(s.snapshot.RecentChanges)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSlots(slots []availability.Slot) []availability.Slot {
	if len(slots) == 0 {
		return nil
	}
	dup := make([]availability.Slot, len(slots))
	copy(dup, slots)
	return dup
}

func cloneChanges(changes []Change) []Change {
	if len(changes) == 0 {
		return nil
	}
	dup := make([]Change, len(changes))
	copy(dup, changes)
	return dup
}
