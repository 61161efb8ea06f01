package constant

import "time"

const (
	DefaultUserRoleID   = 1
	DefaultUserRoleName = "user"
	AdminRoleName       = "admin"

	// Window over which failed logins are counted for lockout and
	// suspicious-activity decisions.
	FailedAttemptWindow = 60 * time.Minute

	// Suspicious-activity trigger: at least this many failures from at
	// least this many distinct IPs inside FailedAttemptWindow.
	SuspicionMinFailures    = 10
	SuspicionMinDistinctIPs = 3

	// Audit entries older than this are purged by the retention sweeper.
	AuditRetention = 90 * 24 * time.Hour
)
