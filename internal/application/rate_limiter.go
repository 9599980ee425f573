package application

import (
	"sync"
	"time"
)

// rateLimitEntry tracks one client's request count inside the current
// window.
type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// CounterStore is the per-client counter the rate limiter runs on. The
// default is in-process; a multi-instance deployment can substitute a
// shared store without touching the limiter's callers.
type CounterStore interface {
	// Increment bumps the counter for key inside a window of the given
	// length, returning the new count and when the window resets.
	Increment(key string, window time.Duration) (count int, reset time.Time)
	// Sweep drops entries whose window has passed.
	Sweep()
}

// memoryCounterStore keeps windowed counters in a process-local map.
type memoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     Clock
}

// NewMemoryCounterStore creates an in-process counter store.
func NewMemoryCounterStore(now Clock) CounterStore {
	if now == nil {
		now = time.Now
	}
	return &memoryCounterStore{
		entries: make(map[string]*rateLimitEntry),
		now:     now,
	}
}

func (s *memoryCounterStore) Increment(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		entry = &rateLimitEntry{count: 0, resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetTime
}

func (s *memoryCounterStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RateLimiter bounds how many requests one identifier (usually an IP) may
// make per window. This is the only long-lived background state in the
// process; everything else is request-scoped.
type RateLimiter struct {
	store  CounterStore
	window time.Duration
	limit  int
}

// NewRateLimiter creates a rate limiter and starts the periodic sweep of
// expired windows.
func NewRateLimiter(store CounterStore, window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{store: store, window: window, limit: limit}
	go rl.sweepLoop()
	return rl
}

// Allow reports whether a request by identifier is within the limit, and
// when its window resets.
func (rl *RateLimiter) Allow(identifier string) (bool, time.Time) {
	if identifier == "" {
		identifier = "anonymous"
	}
	count, reset := rl.store.Increment(identifier, rl.window)
	return count <= rl.limit, reset
}

// Limit returns the configured per-window request limit.
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.store.Sweep()
	}
}
