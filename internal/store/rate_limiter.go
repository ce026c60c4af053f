package store

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitStatus reports a customer's remaining request budget.
type RateLimitStatus struct {
	RequestsInWindow int `json:"requestsInWindow"`
	MaxRequests      int `json:"maxRequests"`
	WindowSeconds    int `json:"windowSeconds"`
	Remaining        int `json:"remaining"`
}

// RateLimiter enforces a per-customer sliding window request limit. Entries
// outside the window are pruned lazily on access.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	requests map[string][]time.Time
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:   window,
		max:      max,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// pruneLocked drops timestamps older than the window. Must be called with the
// lock held.
func (l *RateLimiter) pruneLocked(customerID string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.requests[customerID][:0]
	for _, ts := range l.requests[customerID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	if len(recent) == 0 {
		delete(l.requests, customerID)
		return nil
	}
	l.requests[customerID] = recent
	return recent
}

// Check records the request and allows it if the customer is under the limit.
// Denials return a human-readable reason and do not consume budget.
func (l *RateLimiter) Check(customerID string) (bool, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.pruneLocked(customerID, now)

	if len(recent) >= l.max {
		return false, fmt.Sprintf("Rate limit exceeded. Maximum %d requests per minute.", l.max)
	}

	l.requests[customerID] = append(recent, now)
	return true, ""
}

// Status reports the current window usage without consuming budget.
func (l *RateLimiter) Status(customerID string) RateLimitStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.pruneLocked(customerID, l.now())
	remaining := l.max - len(recent)
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitStatus{
		RequestsInWindow: len(recent),
		MaxRequests:      l.max,
		WindowSeconds:    int(l.window.Seconds()),
		Remaining:        remaining,
	}
}
