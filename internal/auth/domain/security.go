package domain

import "time"

// SecurityRecord is the mutable per-user protection state. One record per
// user, created lazily on first need and kept for the life of the account.
type SecurityRecord struct {
	UserID                   string
	IsLocked                 bool
	LockoutCount             int
	LockoutUntil             *time.Time
	LastLockoutReason        string
	ForcePasswordReset       bool
	ForcePasswordResetReason string
	UpdatedAt                time.Time
}

// LockedNow reports whether the record holds a lock that is still in force.
// A lockoutUntil in the past means the lock is stale and the account must be
// treated as unlocked (lazy expiry, cleared by the caller).
func (r *SecurityRecord) LockedNow(now time.Time) bool {
	return r.IsLocked && r.LockoutUntil != nil && now.Before(*r.LockoutUntil)
}

// LockoutTier pairs the number of windowed failures that imposes the next
// lock with how long that lock lasts.
type LockoutTier struct {
	FailuresToLock int
	Duration       time.Duration
}

// lockoutTiers escalates with each prior lockout and saturates at the
// harshest tier.
var lockoutTiers = []LockoutTier{
	{FailuresToLock: 5, Duration: 15 * time.Minute},
	{FailuresToLock: 10, Duration: 30 * time.Minute},
	{FailuresToLock: 15, Duration: 60 * time.Minute},
	{FailuresToLock: 20, Duration: 24 * time.Hour},
}

// TierFor selects the threshold/duration pair for a user who has already
// been locked lockoutCount times.
func TierFor(lockoutCount int) LockoutTier {
	if lockoutCount < 0 {
		lockoutCount = 0
	}
	if lockoutCount >= len(lockoutTiers) {
		lockoutCount = len(lockoutTiers) - 1
	}
	return lockoutTiers[lockoutCount]
}

// LockoutInfo describes an in-force (or just imposed) lock to callers.
type LockoutInfo struct {
	Locked      bool
	UnlockAt    *time.Time
	Reason      string
	Progression int // how many locks the account has accumulated
}
