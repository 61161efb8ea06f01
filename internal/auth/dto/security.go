package dto

import "time"

type SecurityStatusOutput struct {
	UserID             string     `json:"user_id"`
	IsLocked           bool       `json:"is_locked"`
	LockoutCount       int        `json:"lockout_count"`
	LockoutUntil       *time.Time `json:"lockout_until,omitempty"`
	LastLockoutReason  string     `json:"last_lockout_reason,omitempty"`
	ForcePasswordReset bool       `json:"force_password_reset"`
	ForceResetReason   string     `json:"force_password_reset_reason,omitempty"`
	TimeUntilUnlock    string     `json:"time_until_unlock,omitempty"`
}

type AuditEntryOutput struct {
	ID         string         `json:"id"`
	UserID     *string        `json:"user_id,omitempty"`
	Event      string         `json:"event"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  *string        `json:"ip_address,omitempty"`
	UserAgent  *string        `json:"user_agent,omitempty"`
	Successful bool           `json:"successful"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ForceResetInput struct {
	Reason string `json:"reason"`
}
