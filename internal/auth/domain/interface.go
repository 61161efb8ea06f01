package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// SecurityRepository is the durable source of truth for per-user protection
// state and the audit trail. Counter transitions are conditional updates at
// the storage layer, never read-modify-write in the service.
type SecurityRepository interface {
	EnsureSecurityRecord(ctx context.Context, userID string) (*SecurityRecord, error)
	GetSecurityRecord(ctx context.Context, userID string) (*SecurityRecord, error)

	// ImposeLockout atomically increments the lockout counter and sets the
	// lock fields in a single statement. Returns the post-update record.
	ImposeLockout(ctx context.Context, userID string, until time.Time, reason string) (*SecurityRecord, error)

	// ClearLockout clears the lock only if one is currently set. The
	// returned flag tells the caller whether this call did the clearing,
	// so concurrent checkers log the unlock exactly once.
	ClearLockout(ctx context.Context, userID string) (cleared bool, err error)

	// ResetLockoutCount grants full amnesty after a successful login.
	ResetLockoutCount(ctx context.Context, userID string) error

	SetForcePasswordReset(ctx context.Context, userID, reason string) error
	ClearForcePasswordReset(ctx context.Context, userID string) error

	InsertAuditEntry(ctx context.Context, entry *AuditEntry) error
	QueryAuditEntries(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)

	// CountFailedLogins reports the failed-login total and the number of
	// distinct non-null source IPs for a user since the given time.
	CountFailedLogins(ctx context.Context, userID string, since time.Time) (total int, distinctIPs int, err error)

	DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Notifier delivers security emails. Every send is best-effort: callers
// launch it fire-and-forget and log failures instead of propagating them.
type Notifier interface {
	SendAccountLockedEmail(ctx context.Context, email string, until time.Time, reason string) error
	SendAccountUnlockedEmail(ctx context.Context, email string) error
	SendForcedPasswordResetEmail(ctx context.Context, email, reason string) error
}
