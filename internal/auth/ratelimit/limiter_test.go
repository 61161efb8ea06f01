package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock lets tests advance time without waiting.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(onLockout OnLockoutFunc) (*Limiter, *testClock, *[]time.Duration) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	var slept []time.Duration

	l := NewLimiter(onLockout)
	l.now = clock.Now
	l.sleep = func(_ context.Context, d time.Duration) {
		slept = append(slept, d)
	}
	return l, clock, &slept
}

var testPolicy = Policy{Window: 15 * time.Minute, MaxAttempts: 10}

func TestLimiter_FirstAttemptHasNoDelay(t *testing.T) {
	l, _, slept := newTestLimiter(nil)

	d := l.Check(context.Background(), "ip:1.2.3.4", testPolicy)

	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Attempts)
	assert.Equal(t, time.Duration(0), d.Delay)
	assert.Equal(t, []time.Duration{0}, *slept)
}

func TestLimiter_DelayEscalates(t *testing.T) {
	l, _, _ := newTestLimiter(nil)
	key := "ip:1.2.3.4"

	var delays []time.Duration
	for i := 0; i < 9; i++ {
		d := l.Check(context.Background(), key, testPolicy)
		delays = append(delays, d.Delay)
	}

	// Tiers: free at first, seconds by the third, tens of seconds by the
	// fifth, and never decreasing.
	assert.Equal(t, time.Duration(0), delays[0])
	assert.Equal(t, time.Duration(0), delays[1])
	assert.Equal(t, 2*time.Second, delays[2])
	assert.Equal(t, 15*time.Second, delays[4])
	for i := 1; i < len(delays); i++ {
		assert.GreaterOrEqual(t, delays[i], delays[i-1])
	}
}

func TestLimiter_LockoutAtThreshold(t *testing.T) {
	var gotKey string
	var gotAttempts int
	l, clock, _ := newTestLimiter(func(key string, attempts int, until time.Time) {
		gotKey = key
		gotAttempts = attempts
	})
	key := "ip:1.2.3.4"

	for i := 0; i < 9; i++ {
		d := l.Check(context.Background(), key, testPolicy)
		require.True(t, d.Allowed, "attempt %d should pass", i+1)
	}

	d := l.Check(context.Background(), key, testPolicy)
	assert.False(t, d.Allowed)
	assert.Equal(t, 10, d.Attempts)
	assert.Equal(t, 15*time.Minute, d.RetryAfter)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, 10, gotAttempts)

	// While locked, retries never bump the counter and the remaining time
	// shrinks as the clock moves.
	clock.Advance(5 * time.Minute)
	d = l.Check(context.Background(), key, testPolicy)
	assert.False(t, d.Allowed)
	assert.Equal(t, 10, d.Attempts)
	assert.Equal(t, 10*time.Minute, d.RetryAfter)

	clock.Advance(4 * time.Minute)
	d = l.Check(context.Background(), key, testPolicy)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
}

func TestLimiter_LockoutDurationEscalates(t *testing.T) {
	l, clock, _ := newTestLimiter(nil)
	key := "ip:1.2.3.4"
	policy := Policy{Window: time.Hour, MaxAttempts: 3}

	for i := 0; i < 2; i++ {
		l.Check(context.Background(), key, policy)
	}
	d := l.Check(context.Background(), key, policy)
	assert.False(t, d.Allowed)
	assert.Equal(t, 15*time.Minute, d.RetryAfter)

	// Serve the lockout and keep hammering: the next one is longer.
	clock.Advance(16 * time.Minute)
	for i := 0; i < 2; i++ {
		d = l.Check(context.Background(), key, policy)
		require.True(t, d.Allowed)
	}
	d = l.Check(context.Background(), key, policy)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Minute, d.RetryAfter)
}

func TestLimiter_KeyIsolation(t *testing.T) {
	l, _, _ := newTestLimiter(nil)
	policy := Policy{Window: time.Hour, MaxAttempts: 3}

	for i := 0; i < 3; i++ {
		l.Check(context.Background(), "ip:1.1.1.1", policy)
	}
	locked := l.Check(context.Background(), "ip:1.1.1.1", policy)
	assert.False(t, locked.Allowed)

	// A different key is untouched by the first key's lockout.
	other := l.Check(context.Background(), "ip:2.2.2.2", policy)
	assert.True(t, other.Allowed)
	assert.Equal(t, 1, other.Attempts)
}

func TestLimiter_WindowReset(t *testing.T) {
	l, clock, _ := newTestLimiter(nil)
	key := "ip:1.2.3.4"

	for i := 0; i < 5; i++ {
		l.Check(context.Background(), key, testPolicy)
	}

	clock.Advance(testPolicy.Window + time.Minute)

	d := l.Check(context.Background(), key, testPolicy)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Attempts)
	assert.Equal(t, time.Duration(0), d.Delay)
}

func TestLimiter_ClearGivesFreshStart(t *testing.T) {
	l, _, _ := newTestLimiter(nil)
	key := "ip-email:1.2.3.4:user@example.com"

	for i := 0; i < 6; i++ {
		l.Check(context.Background(), key, testPolicy)
	}

	l.Clear(context.Background(), key)

	d := l.Check(context.Background(), key, testPolicy)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Attempts)
}

func TestLimiter_Sweep(t *testing.T) {
	l, clock, _ := newTestLimiter(nil)

	l.Check(context.Background(), "ip:stale", testPolicy)
	clock.Advance(25 * time.Hour)
	l.Check(context.Background(), "ip:fresh", testPolicy)

	l.sweep()

	l.mu.Lock()
	_, staleKept := l.records["ip:stale"]
	_, freshKept := l.records["ip:fresh"]
	l.mu.Unlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestLimiter_SweepKeepsActiveLockouts(t *testing.T) {
	l, clock, _ := newTestLimiter(nil)
	policy := Policy{Window: time.Hour, MaxAttempts: 2}

	l.Check(context.Background(), "ip:locked", policy)
	l.Check(context.Background(), "ip:locked", policy) // imposes 15 min lockout

	l.mu.Lock()
	l.records["ip:locked"].lockoutUntil = clock.Now().Add(26 * time.Hour)
	l.mu.Unlock()

	clock.Advance(25 * time.Hour)
	l.sweep()

	l.mu.Lock()
	_, kept := l.records["ip:locked"]
	l.mu.Unlock()
	assert.True(t, kept)
}

func TestLimiter_StartStop(t *testing.T) {
	l := NewLimiter(nil)
	l.Start()
	l.Stop()
	// Stop is idempotent.
	l.Stop()
}

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "ip:1.2.3.4", KeyByIP("1.2.3.4"))
	assert.Equal(t, "ip-email:1.2.3.4:a@b.c", KeyByIPEmail("1.2.3.4", "a@b.c"))
	assert.Equal(t, "ip-user:1.2.3.4:user-1", KeyByIPUser("1.2.3.4", "user-1"))
	assert.NotEqual(t, KeyByIPEmail("1.2.3.4", "a@b.c"), KeyByIPUser("1.2.3.4", "a@b.c"))
}
