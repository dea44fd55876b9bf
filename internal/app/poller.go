package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"courtwatch/internal/availability"
	"courtwatch/internal/cache"
	"courtwatch/internal/feed"
	"courtwatch/internal/notify"
	"courtwatch/internal/state"
)

const (
	defaultPollInterval = 5 * time.Minute
	maxBackoff          = 30 * time.Minute
)

// Poller performs the fetch-diff-notify cycle for watch mode and feeds the
// snapshot store the UI reads from.
type Poller struct {
	client    feed.Fetcher
	store     *state.Store
	notifier  notify.Notifier
	statePath string

	// mu serializes refresh cycles; prev and loaded belong to it.
	mu     sync.Mutex
	prev   []availability.Slot
	loaded bool

	kick chan struct{}
}

// NewPoller wires a poller to its collaborators.
func NewPoller(client feed.Fetcher, store *state.Store, notifier notify.Notifier, statePath string) *Poller {
	return &Poller{
		client:    client,
		store:     store,
		notifier:  notifier,
		statePath: statePath,
		kick:      make(chan struct{}, 1),
	}
}

// Kick requests an immediate refresh from the poller goroutine. Safe to call
// from the UI; a refresh already in flight absorbs the request.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// StartPoller launches a background goroutine that refreshes at a fixed
// cadence, stretching the interval while the feed is failing. It returns
// immediately.
func StartPoller(ctx context.Context, p *Poller, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				p.Refresh(ctx)
			case <-p.kick:
				p.Refresh(ctx)
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(calculateBackoff(p.store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures yields the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// Refresh runs one poll cycle. Errors are recorded in the store and logged;
// polling continues on the next tick. Concurrent calls serialize, so a slot
// change is never notified twice.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload, err := p.client.FetchAvailability(ctx)
	if err != nil {
		p.store.Update(nil, err)
		slog.Warn("feed poll failed", "error", err)
		return
	}
	curr := availability.Tabularise(payload)

	// The first successful poll diffs against the state the last run left
	// behind, so restarts do not re-announce everything.
	if !p.loaded {
		prev, err := cache.Load(p.statePath)
		if err != nil {
			slog.Warn("cached state unreadable; starting fresh", "error", err)
		}
		p.prev = prev
		p.loaded = true
	}

	changed := availability.Diff(curr, p.prev)
	if len(changed) > 0 {
		if err := p.notifier.Notify(ctx, notify.ChangeSubject, notify.ChangeBody(changed)); err != nil {
			// Keep prev so the changes are re-detected and re-sent next tick.
			slog.Warn("notification failed", "error", err, "changes", len(changed))
			p.store.Update(curr, nil)
			return
		}
		p.store.RecordChanges(changed, time.Now())
		if err := cache.Save(p.statePath, curr); err != nil {
			slog.Warn("state save failed", "error", err)
		}
	}
	p.prev = curr

	p.store.Update(curr, nil)
}
