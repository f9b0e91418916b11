// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"sync"
	"time"
)

const (
	// defaultMaxFailures is the default number of failed auth attempts
	// allowed per window.
	defaultMaxFailures = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	failures  int
	resetTime time.Time
}

// RateLimiter throttles repeated authentication failures per client IP.
// Successful requests are never counted, so legitimate use of the API is
// unaffected.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxFailures    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxFailures:    defaultMaxFailures,
		windowDuration: defaultWindowDuration,
	}
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(maxFailures int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxFailures:    maxFailures,
		windowDuration: windowDuration,
	}
}

// Blocked reports whether the given key has exhausted its failure budget
// for the current window.
func (rl *RateLimiter) Blocked(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.entries[key]
	if !exists {
		return false
	}

	if time.Now().After(entry.resetTime) {
		delete(rl.entries, key)
		return false
	}

	return entry.failures >= rl.maxFailures
}

// RecordFailure counts one failed attempt against the given key.
func (rl *RateLimiter) RecordFailure(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			failures:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return
	}

	entry.failures++
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries (can be called periodically to free memory).
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
