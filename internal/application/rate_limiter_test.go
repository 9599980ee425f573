package application_test

import (
	"testing"
	"time"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/testfixtures"
)

func TestRateLimiterAllow(t *testing.T) {
	clock := testfixtures.NewClock(testEpoch)
	limiter := application.NewRateLimiter(
		application.NewMemoryCounterStore(clock.Now),
		time.Minute,
		3,
	)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d was denied under the limit", i+1)
		}
	}

	allowed, reset := limiter.Allow("10.0.0.1")
	if allowed {
		t.Fatal("request over the limit was allowed")
	}
	if want := testEpoch.Add(time.Minute); !reset.Equal(want) {
		t.Errorf("reset = %v, want %v", reset, want)
	}

	// Another client has its own budget.
	if allowed, _ := limiter.Allow("10.0.0.2"); !allowed {
		t.Error("a fresh client was denied")
	}

	// The window reopens once it has passed.
	clock.Advance(61 * time.Second)
	if allowed, _ := limiter.Allow("10.0.0.1"); !allowed {
		t.Error("request after the window reset was denied")
	}
}

func TestRateLimiterAnonymousFallback(t *testing.T) {
	clock := testfixtures.NewClock(testEpoch)
	limiter := application.NewRateLimiter(
		application.NewMemoryCounterStore(clock.Now),
		time.Minute,
		1,
	)

	if allowed, _ := limiter.Allow(""); !allowed {
		t.Fatal("first anonymous request was denied")
	}
	// Empty identifiers share one bucket.
	if allowed, _ := limiter.Allow(""); allowed {
		t.Error("second anonymous request was allowed over the limit")
	}
}

func TestMemoryCounterStoreSweep(t *testing.T) {
	clock := testfixtures.NewClock(testEpoch)
	store := application.NewMemoryCounterStore(clock.Now)

	store.Increment("a", time.Minute)
	clock.Advance(2 * time.Minute)
	store.Sweep()

	// After the sweep the key starts a fresh window.
	count, _ := store.Increment("a", time.Minute)
	if count != 1 {
		t.Errorf("count after sweep = %d, want 1", count)
	}
}
