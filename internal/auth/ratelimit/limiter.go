// Package ratelimit provides per-key progressive throttling for
// credential-bearing endpoints. It guards availability, not correctness:
// every check resolves to an allow/deny decision and never to an error.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Policy configures one endpoint class.
type Policy struct {
	// Window is how long the attempt counter survives without activity
	// before it resets.
	Window time.Duration
	// MaxAttempts is the count at which the first key lockout is imposed.
	// Further lockouts are imposed at every MaxAttempts multiple, each one
	// longer than the last.
	MaxAttempts int
}

// Decision is the outcome of a single Check call.
type Decision struct {
	Allowed    bool
	Attempts   int
	Delay      time.Duration
	RetryAfter time.Duration
}

// Checker is the limiter surface the login path depends on. The in-memory
// Limiter covers a single process; RedisLimiter shares state across
// instances.
type Checker interface {
	Check(ctx context.Context, key string, p Policy) Decision
	Clear(ctx context.Context, key string)
}

// OnLockoutFunc is invoked when a key crosses a lockout milestone, so the
// caller can escalate to audit logging.
type OnLockoutFunc func(key string, attempts int, until time.Time)

type record struct {
	attempts     int
	lockouts     int
	lastAttempt  time.Time
	lockoutUntil time.Time
}

// Limiter tracks attempts per opaque key in process memory. State is
// deliberately not durable: a restart resets all counters, which is
// acceptable for a defense-in-depth layer that is not the source of truth
// for account security.
type Limiter struct {
	mu        sync.Mutex
	records   map[string]*record
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration)
	onLockout OnLockoutFunc

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewLimiter(onLockout OnLockoutFunc) *Limiter {
	return &Limiter{
		records:   make(map[string]*record),
		now:       time.Now,
		sleep:     sleepContext,
		onLockout: onLockout,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Start launches the periodic sweep that drops stale records. Safe to call
// once per limiter; Stop terminates the sweep goroutine.
func (l *Limiter) Start() {
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	go func() {
		defer close(l.doneCh)
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-l.stopCh:
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *Limiter) Stop() {
	if l.stopCh == nil {
		return
	}
	close(l.stopCh)
	<-l.doneCh
	l.stopCh = nil
}

// sweep removes records idle for more than 24h whose lockout, if any, has
// already passed.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, rec := range l.records {
		if now.Sub(rec.lastAttempt) < 24*time.Hour {
			continue
		}
		if rec.lockoutUntil.After(now) {
			continue
		}
		delete(l.records, key)
	}
}

// Check applies the policy to one request. The read-check-increment section
// runs under the lock so concurrent requests for the same key cannot
// under-count; the artificial delay is awaited outside it.
func (l *Limiter) Check(ctx context.Context, key string, p Policy) Decision {
	l.mu.Lock()
	now := l.now()

	rec, ok := l.records[key]
	if !ok {
		rec = &record{}
		l.records[key] = rec
	}

	// An in-force key lockout rejects immediately without touching the
	// counter, so retries during the lockout never extend it.
	if rec.lockoutUntil.After(now) {
		d := Decision{Attempts: rec.attempts, RetryAfter: rec.lockoutUntil.Sub(now)}
		l.mu.Unlock()
		return d
	}

	if !rec.lastAttempt.IsZero() && now.Sub(rec.lastAttempt) > p.Window {
		rec.attempts = 0
	}

	delay := delayFor(rec.attempts)
	rec.attempts++
	rec.lastAttempt = now
	attempts := rec.attempts

	var lockedFor time.Duration
	if p.MaxAttempts > 0 && attempts >= p.MaxAttempts && attempts%p.MaxAttempts == 0 {
		rec.lockouts++
		lockedFor = lockoutDurationFor(rec.lockouts)
		rec.lockoutUntil = now.Add(lockedFor)
	}
	l.mu.Unlock()

	if lockedFor > 0 {
		if l.onLockout != nil {
			l.onLockout(key, attempts, now.Add(lockedFor))
		}
		return Decision{Attempts: attempts, RetryAfter: lockedFor}
	}

	l.sleep(ctx, delay)

	return Decision{Allowed: true, Attempts: attempts, Delay: delay}
}

// Clear wipes a key's state entirely; called after a successful
// authenticated action so legitimate users start fresh.
func (l *Limiter) Clear(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, key)
}

// delayFor escalates the artificial delay with the attempt count so far
// (pre-increment). It throttles automated retries before any blocking
// happens.
func delayFor(attempts int) time.Duration {
	switch {
	case attempts < 2:
		return 0
	case attempts < 4:
		return 2 * time.Second
	case attempts < 10:
		return 15 * time.Second
	default:
		return time.Minute
	}
}

// lockoutDurationFor escalates with each lockout already served by the key,
// saturating at 24h.
func lockoutDurationFor(lockouts int) time.Duration {
	durations := []time.Duration{
		15 * time.Minute,
		30 * time.Minute,
		60 * time.Minute,
		24 * time.Hour,
	}
	if lockouts < 1 {
		lockouts = 1
	}
	if lockouts > len(durations) {
		lockouts = len(durations)
	}
	return durations[lockouts-1]
}

// Key derivation helpers for the supported endpoint classes.

func KeyByIP(ip string) string { return "ip:" + ip }

func KeyByIPEmail(ip, email string) string {
	return fmt.Sprintf("ip-email:%s:%s", ip, email)
}

func KeyByIPUser(ip, userID string) string {
	return fmt.Sprintf("ip-user:%s:%s", ip, userID)
}
