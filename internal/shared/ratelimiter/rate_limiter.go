// Package ratelimiter provides a fixed-window rate limiter keyed by an
// arbitrary string, used to slow down credential guessing on the auth
// endpoints.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter counts events per key inside a fixed window. When the window
// elapses the count resets. Elapsed windows are reclaimed lazily on Allow,
// at most once per interval, so the map stays bounded by the keys seen in
// the last two intervals. Safe for concurrent use.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu        sync.Mutex
	windows   map[string]*window
	lastPrune time.Time
}

type window struct {
	count int
	start time.Time
}

// NewRateLimiter creates a limiter allowing limit events per key per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		windows:   make(map[string]*window),
		lastPrune: time.Now(),
	}
}

// Allow reports whether another event for key fits into the current window,
// counting it if so.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastPrune) >= rl.interval {
		rl.pruneLocked(now)
		rl.lastPrune = now
	}

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.interval {
		rl.windows[key] = &window{count: 1, start: now}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Prune drops windows that have fully elapsed.
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.pruneLocked(time.Now())
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, key)
		}
	}
}
