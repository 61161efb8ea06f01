package service

//go:generate mockgen -destination=../../mocks/mock_security_repository.go -package=mocks github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain SecurityRepository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/pkg/constant"
)

// LockoutService owns the per-account protection state: progressive lockout
// after repeated failures, the distributed-attack detector, and the audit
// trail both decisions read from.
//
// Audit writes and record updates propagate their errors; an unlogged failed
// attempt must fail the request rather than slip past the bookkeeping.
// Notification sends are the one exception: fire-and-forget, failures only
// logged.
type LockoutService struct {
	repo     domain.SecurityRepository
	users    domain.UserRepository
	notifier domain.Notifier
	now      func() time.Time
	log      *slog.Logger
}

func NewLockoutService(repo domain.SecurityRepository, users domain.UserRepository, notifier domain.Notifier) *LockoutService {
	return &LockoutService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		now:      time.Now,
		log:      slog.Default().With("component", "lockout"),
	}
}

// IsAccountLocked reports whether the account is currently locked. A lock
// whose expiry has passed is cleared here, lazily, and the automatic unlock
// is audited exactly once even under concurrent checks.
func (s *LockoutService) IsAccountLocked(ctx context.Context, userID string) (*domain.LockoutInfo, error) {
	rec, err := s.repo.GetSecurityRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &domain.LockoutInfo{}, nil
	}

	now := s.now()
	if rec.IsLocked && rec.LockoutUntil != nil && !now.Before(*rec.LockoutUntil) {
		cleared, err := s.repo.ClearLockout(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cleared {
			if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
				UserID:     &userID,
				Event:      domain.EventAccountUnlocked,
				Details:    map[string]any{"method": "automatic"},
				Successful: true,
			}); err != nil {
				return nil, err
			}
		}
		return &domain.LockoutInfo{Progression: rec.LockoutCount}, nil
	}

	if rec.LockedNow(now) {
		return &domain.LockoutInfo{
			Locked:      true,
			UnlockAt:    rec.LockoutUntil,
			Reason:      rec.LastLockoutReason,
			Progression: rec.LockoutCount,
		}, nil
	}

	return &domain.LockoutInfo{Progression: rec.LockoutCount}, nil
}

// RecordFailedAttempt audits the failure, escalates to a timed lockout when
// the windowed failure count reaches the tier for this account's history,
// and then runs the distributed-attack detector.
func (s *LockoutService) RecordFailedAttempt(ctx context.Context, userID, ip, userAgent, reason string) (*domain.LockoutInfo, error) {
	if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID:     &userID,
		Event:      domain.EventLoginFailure,
		Details:    map[string]any{"reason": reason},
		IPAddress:  optional(ip),
		UserAgent:  optional(userAgent),
		Successful: false,
	}); err != nil {
		return nil, err
	}

	rec, err := s.repo.EnsureSecurityRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	total, distinctIPs, err := s.repo.CountFailedLogins(ctx, userID, now.Add(-constant.FailedAttemptWindow))
	if err != nil {
		return nil, err
	}

	info := &domain.LockoutInfo{Progression: rec.LockoutCount}

	tier := domain.TierFor(rec.LockoutCount)
	if !rec.LockedNow(now) && total >= tier.FailuresToLock {
		until := now.Add(tier.Duration)
		lockReason := fmt.Sprintf("%d failed login attempts within the last hour", total)

		rec, err = s.repo.ImposeLockout(ctx, userID, until, lockReason)
		if err != nil {
			return nil, err
		}

		if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
			UserID: &userID,
			Event:  domain.EventAccountLocked,
			Details: map[string]any{
				"reason":           lockReason,
				"failed_attempts":  total,
				"duration_minutes": int(tier.Duration.Minutes()),
				"lockout_count":    rec.LockoutCount,
			},
			IPAddress:  optional(ip),
			Successful: true,
		}); err != nil {
			return nil, err
		}

		s.notify(userID, func(ctx context.Context, email string) error {
			return s.notifier.SendAccountLockedEmail(ctx, email, until, lockReason)
		})

		info = &domain.LockoutInfo{
			Locked:      true,
			UnlockAt:    &until,
			Reason:      lockReason,
			Progression: rec.LockoutCount,
		}
	}

	if err := s.checkSuspiciousActivity(ctx, userID, rec, total, distinctIPs); err != nil {
		return nil, err
	}

	return info, nil
}

// checkSuspiciousActivity flags a distributed credential-stuffing pattern:
// failures spread over several source IPs inside the decision window. The
// forced reset sticks until the user completes a password reset.
func (s *LockoutService) checkSuspiciousActivity(ctx context.Context, userID string, rec *domain.SecurityRecord, total, distinctIPs int) error {
	if rec.ForcePasswordReset {
		return nil
	}
	if distinctIPs < constant.SuspicionMinDistinctIPs || total < constant.SuspicionMinFailures {
		return nil
	}

	reason := fmt.Sprintf("%d failed login attempts from %d distinct IP addresses within the last hour",
		total, distinctIPs)

	if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID: &userID,
		Event:  domain.EventSuspiciousActivity,
		Details: map[string]any{
			"failed_attempts": total,
			"distinct_ips":    distinctIPs,
		},
		Successful: false,
	}); err != nil {
		return err
	}

	if err := s.forceReset(ctx, userID, reason); err != nil {
		return err
	}

	return nil
}

// RecordSuccessfulLogin audits the success and grants full amnesty: a clean
// login forgives lockout history entirely.
func (s *LockoutService) RecordSuccessfulLogin(ctx context.Context, userID, ip, userAgent string) error {
	if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID:     &userID,
		Event:      domain.EventLoginSuccess,
		IPAddress:  optional(ip),
		UserAgent:  optional(userAgent),
		Successful: true,
	}); err != nil {
		return err
	}

	if _, err := s.repo.EnsureSecurityRecord(ctx, userID); err != nil {
		return err
	}

	return s.repo.ResetLockoutCount(ctx, userID)
}

// AdminUnlock lifts a lock immediately, distinguishable in the audit trail
// from the automatic path.
func (s *LockoutService) AdminUnlock(ctx context.Context, userID, adminID string) error {
	cleared, err := s.repo.ClearLockout(ctx, userID)
	if err != nil {
		return err
	}
	if !cleared {
		return nil
	}

	if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID:     &userID,
		Event:      domain.EventAccountUnlocked,
		Details:    map[string]any{"method": "admin", "admin_id": adminID},
		Successful: true,
	}); err != nil {
		return err
	}

	s.notify(userID, func(ctx context.Context, email string) error {
		return s.notifier.SendAccountUnlockedEmail(ctx, email)
	})

	return nil
}

// ForcePasswordReset flags the account for a mandatory credential reset.
func (s *LockoutService) ForcePasswordReset(ctx context.Context, userID, reason string) error {
	if _, err := s.repo.EnsureSecurityRecord(ctx, userID); err != nil {
		return err
	}
	return s.forceReset(ctx, userID, reason)
}

func (s *LockoutService) forceReset(ctx context.Context, userID, reason string) error {
	if err := s.repo.SetForcePasswordReset(ctx, userID, reason); err != nil {
		return err
	}

	if err := s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID:     &userID,
		Event:      domain.EventPasswordResetForced,
		Details:    map[string]any{"reason": reason},
		Successful: true,
	}); err != nil {
		return err
	}

	s.notify(userID, func(ctx context.Context, email string) error {
		return s.notifier.SendForcedPasswordResetEmail(ctx, email, reason)
	})

	return nil
}

// ClearForcePasswordReset is driven only by a completed password reset;
// the flag has no expiry of its own.
func (s *LockoutService) ClearForcePasswordReset(ctx context.Context, userID string) error {
	if err := s.repo.ClearForcePasswordReset(ctx, userID); err != nil {
		return err
	}

	return s.repo.InsertAuditEntry(ctx, &domain.AuditEntry{
		UserID:     &userID,
		Event:      domain.EventPasswordResetCompleted,
		Successful: true,
	})
}

// RequiresPasswordReset reports whether the account is held behind a forced
// credential reset. Every login or reset-initiation path checks this.
func (s *LockoutService) RequiresPasswordReset(ctx context.Context, userID string) (bool, string, error) {
	rec, err := s.repo.GetSecurityRecord(ctx, userID)
	if err != nil {
		return false, "", err
	}
	if rec == nil {
		return false, "", nil
	}
	return rec.ForcePasswordReset, rec.ForcePasswordResetReason, nil
}

// GetSecurityStatus renders the record for admin or self-service display,
// applying the same lazy unlock as IsAccountLocked first.
func (s *LockoutService) GetSecurityStatus(ctx context.Context, userID string) (*dto.SecurityStatusOutput, error) {
	if _, err := s.IsAccountLocked(ctx, userID); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetSecurityRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &dto.SecurityStatusOutput{UserID: userID}, nil
	}

	out := &dto.SecurityStatusOutput{
		UserID:             rec.UserID,
		IsLocked:           rec.IsLocked,
		LockoutCount:       rec.LockoutCount,
		LockoutUntil:       rec.LockoutUntil,
		LastLockoutReason:  rec.LastLockoutReason,
		ForcePasswordReset: rec.ForcePasswordReset,
		ForceResetReason:   rec.ForcePasswordResetReason,
	}
	if rec.LockedNow(s.now()) {
		out.TimeUntilUnlock = HumanDuration(rec.LockoutUntil.Sub(s.now()))
	}
	return out, nil
}

func (s *LockoutService) GetAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]dto.AuditEntryOutput, error) {
	entries, err := s.repo.QueryAuditEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AuditEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryOutput{
			ID:         e.ID,
			UserID:     e.UserID,
			Event:      e.Event.String(),
			Details:    e.Details,
			IPAddress:  e.IPAddress,
			UserAgent:  e.UserAgent,
			Successful: e.Successful,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}

// notify resolves the user's email and sends in the background. A slow or
// failing mail server must never hold up or fail the security action.
func (s *LockoutService) notify(userID string, send func(ctx context.Context, email string) error) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := s.users.GetByID(ctx, userID)
		if err != nil || user == nil {
			s.log.Warn("could not resolve user for notification", "user_id", userID, "error", err)
			return
		}
		if err := send(ctx, user.Email); err != nil {
			s.log.Warn("security notification failed", "user_id", userID, "error", err)
		}
	}()
}

// HumanDuration renders a remaining-time estimate for lockout responses,
// e.g. "15 minutes" or "2 hours 5 minutes".
func HumanDuration(d time.Duration) string {
	if d <= 0 {
		return "0 minutes"
	}
	if d < time.Minute {
		return "less than a minute"
	}
	d = d.Round(time.Minute)

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%d %s", minutes, plural(minutes, "minute"))
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	default:
		return fmt.Sprintf("%d %s %d %s", hours, plural(hours, "hour"), minutes, plural(minutes, "minute"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
