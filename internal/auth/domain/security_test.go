package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name         string
		lockoutCount int
		wantFailures int
		wantDuration time.Duration
	}{
		{"first lockout", 0, 5, 15 * time.Minute},
		{"second lockout", 1, 10, 30 * time.Minute},
		{"third lockout", 2, 15, 60 * time.Minute},
		{"fourth lockout", 3, 20, 24 * time.Hour},
		{"saturates past the last tier", 9, 20, 24 * time.Hour},
		{"negative count clamps to first tier", -1, 5, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := TierFor(tt.lockoutCount)
			assert.Equal(t, tt.wantFailures, tier.FailuresToLock)
			assert.Equal(t, tt.wantDuration, tier.Duration)
		})
	}
}

// Each escalation must be at least as strict as the one before it, or the
// punishment would shrink as the history grows.
func TestTierFor_Monotonic(t *testing.T) {
	prev := TierFor(0)
	for count := 1; count < 10; count++ {
		tier := TierFor(count)
		assert.GreaterOrEqual(t, tier.FailuresToLock, prev.FailuresToLock, "count=%d", count)
		assert.GreaterOrEqual(t, tier.Duration, prev.Duration, "count=%d", count)
		prev = tier
	}
}

func TestLockedNow(t *testing.T) {
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)

	tests := []struct {
		name string
		rec  SecurityRecord
		want bool
	}{
		{"unlocked record", SecurityRecord{}, false},
		{"locked with future expiry", SecurityRecord{IsLocked: true, LockoutUntil: &future}, true},
		{"locked but expired", SecurityRecord{IsLocked: true, LockoutUntil: &past}, false},
		{"locked flag without expiry", SecurityRecord{IsLocked: true}, false},
		{"expiry without locked flag", SecurityRecord{LockoutUntil: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.LockedNow(now))
		})
	}
}

func TestAuditEventValid(t *testing.T) {
	assert.True(t, EventLoginFailure.Valid())
	assert.True(t, EventAccountLocked.Valid())
	assert.True(t, EventSuspiciousActivity.Valid())
	assert.False(t, AuditEvent("").Valid())
	assert.False(t, AuditEvent("coffee_spilled").Valid())
}
