package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"courtwatch/internal/availability"
	"courtwatch/internal/cache"
	"courtwatch/internal/feed"
	"courtwatch/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"many failures capped", 30, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	for failures := 0; failures <= 40; failures++ {
		got := calculateBackoff(failures, defaultPollInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, defaultPollInterval, got, maxBackoff)
		}
	}
}

type fetcherFunc func(ctx context.Context) (*feed.Payload, error)

func (f fetcherFunc) FetchAvailability(ctx context.Context) (*feed.Payload, error) { return f(ctx) }

type recordingNotifier struct {
	calls  int
	bodies []string
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, _, body string) error {
	n.calls++
	n.bodies = append(n.bodies, body)
	return n.err
}

func intp(n int) *int { return &n }

func singleSlotPayload(spaces int) *feed.Payload {
	return &feed.Payload{Rows: []feed.Row{{
		FromTime: "07:00",
		Days: map[string]feed.Day{
			"day0201": {Label: "02 Jan", TotalSpaces: spaces, Spaces: []feed.Space{{
				VenueID:     intp(5),
				Name:        "Test Venue",
				TotalSpaces: 1,
				BookingURL:  "https://example.com/2026-01-02/slot/07:00-08:00",
			}}},
		},
	}}}
}

func TestPoller_RefreshNotifiesOnceAndPersists(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	notifier := &recordingNotifier{}
	store := &state.Store{}

	payload := singleSlotPayload(2)
	p := NewPoller(fetcherFunc(func(context.Context) (*feed.Payload, error) {
		return payload, nil
	}), store, notifier, statePath)

	p.Refresh(context.Background())

	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1 for the fresh table", notifier.calls)
	}
	if notifier.bodies[0] != "2026-01-02|07:00|5" {
		t.Fatalf("notification body = %q, want the slot key", notifier.bodies[0])
	}

	saved, err := cache.Load(statePath)
	if err != nil || len(saved) != 1 {
		t.Fatalf("cache after refresh = %#v (err %v), want 1 slot", saved, err)
	}

	snap := store.Snapshot()
	if !snap.HasData || len(snap.Slots) != 1 {
		t.Fatalf("snapshot = %#v, want the slot table", snap)
	}
	if len(snap.RecentChanges) != 1 || snap.RecentChanges[0].Key != "2026-01-02|07:00|5" {
		t.Fatalf("RecentChanges = %#v, want the notified key", snap.RecentChanges)
	}

	// An unchanged second poll stays quiet.
	p.Refresh(context.Background())
	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d after identical poll, want still 1", notifier.calls)
	}
}

func TestPoller_ConcurrentRefreshNotifiesOnce(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	notifier := &recordingNotifier{}
	store := &state.Store{}

	// A slow fetch gives every goroutine time to enter Refresh before the
	// first cycle completes.
	p := NewPoller(fetcherFunc(func(context.Context) (*feed.Payload, error) {
		time.Sleep(20 * time.Millisecond)
		return singleSlotPayload(2), nil
	}), store, notifier, statePath)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Refresh(context.Background())
		}()
	}
	wg.Wait()

	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1 across concurrent refreshes", notifier.calls)
	}
	snap := store.Snapshot()
	if len(snap.RecentChanges) != 1 {
		t.Fatalf("RecentChanges = %#v, want the single notified key", snap.RecentChanges)
	}
}

func TestPoller_NotifyFailureRetriesNextRefresh(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	store := &state.Store{}

	p := NewPoller(fetcherFunc(func(context.Context) (*feed.Payload, error) {
		return singleSlotPayload(2), nil
	}), store, notifier, statePath)

	p.Refresh(context.Background())
	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.calls)
	}
	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Fatalf("state persisted despite failed notification")
	}

	// Delivery recovers; the same change is re-sent.
	notifier.err = nil
	p.Refresh(context.Background())
	if notifier.calls != 2 {
		t.Fatalf("notifier calls = %d, want retry after failure", notifier.calls)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Fatalf("state not persisted after successful notification: %v", err)
	}
}

func TestPoller_FetchErrorKeepsPollingState(t *testing.T) {
	notifier := &recordingNotifier{}
	store := &state.Store{}

	p := NewPoller(fetcherFunc(func(context.Context) (*feed.Payload, error) {
		return nil, errors.New("connection refused")
	}), store, notifier, filepath.Join(t.TempDir(), "state.json"))

	p.Refresh(context.Background())
	p.Refresh(context.Background())

	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("snapshot = %#v, want 2 failures and offline", snap)
	}
	if notifier.calls != 0 {
		t.Fatalf("notifier calls = %d, want none on fetch failure", notifier.calls)
	}
}

func TestPoller_FirstPollDiffsAgainstCachedState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	payload := singleSlotPayload(2)

	// Seed the cache with exactly what the feed will return.
	if err := cache.Save(statePath, availability.Tabularise(payload)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	notifier := &recordingNotifier{}
	store := &state.Store{}
	p := NewPoller(fetcherFunc(func(context.Context) (*feed.Payload, error) {
		return payload, nil
	}), store, notifier, statePath)

	p.Refresh(context.Background())
	if notifier.calls != 0 {
		t.Fatalf("notifier calls = %d, want none when cache matches feed", notifier.calls)
	}
}
