package domain

import "time"

// AuditEvent is the closed set of security-relevant event kinds. Keeping
// this a dedicated type means an unknown kind is a construction-time error
// instead of a silently ignored filter value.
type AuditEvent string

const (
	EventLoginSuccess           AuditEvent = "login_success"
	EventLoginFailure           AuditEvent = "login_failure"
	EventLogout                 AuditEvent = "logout"
	EventPasswordChange         AuditEvent = "password_change"
	EventPasswordResetRequested AuditEvent = "password_reset_requested"
	EventPasswordResetCompleted AuditEvent = "password_reset_completed"
	EventPasswordResetForced    AuditEvent = "password_reset_forced"
	EventAccountLocked          AuditEvent = "account_locked"
	EventAccountUnlocked        AuditEvent = "account_unlocked"
	EventSuspiciousActivity     AuditEvent = "suspicious_activity"
	EventMultipleFailedAttempts AuditEvent = "multiple_failed_attempts"
	EventSecurityQuestionSetup  AuditEvent = "security_question_setup"
	EventSecurityQuestionOK     AuditEvent = "security_question_verify_success"
	EventSecurityQuestionFail   AuditEvent = "security_question_verify_failure"
	EventSecondaryEmailAdded    AuditEvent = "secondary_email_added"
	EventSecondaryEmailChanged  AuditEvent = "secondary_email_changed"
	EventSecondaryEmailVerified AuditEvent = "secondary_email_verified"
	EventSecondaryEmailRecovery AuditEvent = "secondary_email_recovery"
	EventSessionExpired         AuditEvent = "session_expired"
	EventAdminLogin             AuditEvent = "admin_login"
)

var validEvents = map[AuditEvent]struct{}{
	EventLoginSuccess:           {},
	EventLoginFailure:           {},
	EventLogout:                 {},
	EventPasswordChange:         {},
	EventPasswordResetRequested: {},
	EventPasswordResetCompleted: {},
	EventPasswordResetForced:    {},
	EventAccountLocked:          {},
	EventAccountUnlocked:        {},
	EventSuspiciousActivity:     {},
	EventMultipleFailedAttempts: {},
	EventSecurityQuestionSetup:  {},
	EventSecurityQuestionOK:     {},
	EventSecurityQuestionFail:   {},
	EventSecondaryEmailAdded:    {},
	EventSecondaryEmailChanged:  {},
	EventSecondaryEmailVerified: {},
	EventSecondaryEmailRecovery: {},
	EventSessionExpired:         {},
	EventAdminLogin:             {},
}

func (e AuditEvent) Valid() bool {
	_, ok := validEvents[e]
	return ok
}

func (e AuditEvent) String() string { return string(e) }

// AuditEntry is an append-only record of a security-relevant event.
// Entries are never mutated; the retention sweeper is the only deleter.
type AuditEntry struct {
	ID         string
	UserID     *string // nil for pre-authentication failures keyed by email only
	Event      AuditEvent
	Details    map[string]any
	IPAddress  *string
	UserAgent  *string
	Successful bool
	CreatedAt  time.Time
}

// AuditFilter narrows an audit-log query. Zero values mean "no constraint".
type AuditFilter struct {
	UserID    string
	Event     AuditEvent
	IPAddress string
	Since     time.Time
	Until     time.Time
	Limit     int
	Offset    int
}
