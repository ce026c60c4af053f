package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(start time.Time) (*RateLimiter, *time.Time) {
	l := NewRateLimiter(60*time.Second, 30)
	current := start
	l.now = func() time.Time { return current }
	return l, &current
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	l, _ := newTestRateLimiter(time.Now())

	for i := 0; i < 30; i++ {
		allowed, reason := l.Check("cust-1")
		require.True(t, allowed, "request %d should be allowed", i+1)
		require.Empty(t, reason)
	}

	allowed, reason := l.Check("cust-1")
	assert.False(t, allowed)
	assert.Contains(t, reason, "Rate limit exceeded")
}

func TestRateLimiterWindowSlides(t *testing.T) {
	l, current := newTestRateLimiter(time.Now())

	for i := 0; i < 30; i++ {
		allowed, _ := l.Check("cust-1")
		require.True(t, allowed)
	}
	allowed, _ := l.Check("cust-1")
	require.False(t, allowed)

	*current = current.Add(61 * time.Second)
	allowed, _ = l.Check("cust-1")
	assert.True(t, allowed)
}

func TestRateLimiterPerCustomerIsolation(t *testing.T) {
	l, _ := newTestRateLimiter(time.Now())

	for i := 0; i < 30; i++ {
		allowed, _ := l.Check("busy")
		require.True(t, allowed)
	}
	allowed, _ := l.Check("busy")
	require.False(t, allowed)

	allowed, _ = l.Check("quiet")
	assert.True(t, allowed)
}

func TestRateLimiterStatus(t *testing.T) {
	l, _ := newTestRateLimiter(time.Now())

	for i := 0; i < 5; i++ {
		l.Check("cust-1")
	}

	status := l.Status("cust-1")
	assert.Equal(t, 5, status.RequestsInWindow)
	assert.Equal(t, 30, status.MaxRequests)
	assert.Equal(t, 60, status.WindowSeconds)
	assert.Equal(t, 25, status.Remaining)

	// Status does not consume budget.
	assert.Equal(t, 5, l.Status("cust-1").RequestsInWindow)
}
