// Package scheduler drives the fixed-interval polling loop: enumerate
// tracked feeds, detect new items, deliver notifications, advance cursors.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
	"github.com/AlvesR0/rss-telegram-bot/pkg/tracker"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// Store is the record persistence interface the scheduler needs.
type Store interface {
	Load(ctx context.Context, key domain.Key) (*domain.Record, error)
	Save(ctx context.Context, key domain.Key, rec *domain.Record) error
	List(ctx context.Context) ([]domain.Key, error)
}

// Fetcher retrieves and parses a feed snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.Item, error)
}

// Notifier delivers a formatted message to a chat.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Scheduler alternates between waiting out the interval and one strictly
// sequential pass over all tracked feeds. One feed is fetched and processed
// at a time, bounding load on upstream servers and keeping partial failure
// easy to reason about.
type Scheduler struct {
	store    Store
	fetcher  Fetcher
	notifier Notifier
	interval time.Duration

	mu        sync.RWMutex
	passStart time.Time
}

// New creates a scheduler. A zero interval falls back to one hour.
func New(st Store, fetcher Fetcher, notifier Notifier, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = time.Hour
	}
	return &Scheduler{
		store:     st,
		fetcher:   fetcher,
		notifier:  notifier,
		interval:  interval,
		passStart: time.Now(),
	}
}

// Run executes the polling loop until the context is canceled. The first
// pass starts immediately, later ones once per interval. A new pass can
// never start while the previous one is still in progress.
func (s *Scheduler) Run(ctx context.Context) error {
	lgr.Printf("[INFO] scheduler started, poll interval %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] scheduler stopped")
			return nil
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

// TimeUntilNext reports how long remains until the next pass begins. Safe
// for arbitrary concurrent callers and never blocks the polling loop.
func (s *Scheduler) TimeUntilNext() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	remaining := s.interval - time.Since(s.passStart)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// runPass polls every tracked feed exactly once, sequentially. No error
// from one record may abort the pass for the others.
func (s *Scheduler) runPass(ctx context.Context) {
	s.mu.Lock()
	s.passStart = time.Now()
	s.mu.Unlock()

	keys, err := s.store.List(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to enumerate feeds: %v", err)
		return
	}

	lgr.Printf("[DEBUG] polling %d feeds", len(keys))
	for _, key := range keys {
		if ctx.Err() != nil {
			return
		}
		s.pollFeed(ctx, key)
	}
}

// pollFeed runs the per-record step: load, fetch, diff, deliver, persist.
// A fetch or parse failure skips the record with its stored state fully
// untouched. A delivery failure is logged per notification and does not
// hold back the cursor; the missed message is not re-detected next cycle.
func (s *Scheduler) pollFeed(ctx context.Context, key domain.Key) {
	rec, err := s.store.Load(ctx, key)
	if err != nil {
		lgr.Printf("[ERROR] failed to load record %d-%d: %v", key.Owner, key.Pin, err)
		return
	}

	items, err := s.fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch feed %s for %d-%d: %v", rec.URL, key.Owner, key.Pin, err)
		return
	}

	notifs, token, ok := tracker.Diff(rec, items)
	for _, n := range notifs {
		if err := s.notifier.Send(ctx, rec.SendTo, n.Format(key.Pin, rec)); err != nil {
			lgr.Printf("[WARN] failed to notify user %d about %s: %v", rec.SendTo, n.URL, err)
		}
	}

	if !ok {
		return // empty fetch, cursor stays where it was
	}

	rec.SetLastPost(token)
	if err := s.store.Save(ctx, key, rec); err != nil {
		// cursor advance is lost, next pass recomputes from the old one
		lgr.Printf("[ERROR] failed to save record %d-%d: %v", key.Owner, key.Pin, err)
	}
}
