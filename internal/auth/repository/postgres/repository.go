package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.role_id, r.name, u.created_at, u.updated_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleID, &user.RoleName,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.role_id, r.name, u.created_at, u.updated_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleID, &user.RoleName,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, role_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, user.ID, user.Email, user.PasswordHash, user.RoleID, user.CreatedAt, user.UpdatedAt)

	return err
}

const securityRecordColumns = `user_id, is_locked, lockout_count, lockout_until,
		last_lockout_reason, force_password_reset, force_password_reset_reason, updated_at`

func scanSecurityRecord(row pgx.Row) (*domain.SecurityRecord, error) {
	var rec domain.SecurityRecord
	err := row.Scan(&rec.UserID, &rec.IsLocked, &rec.LockoutCount, &rec.LockoutUntil,
		&rec.LastLockoutReason, &rec.ForcePasswordReset, &rec.ForcePasswordResetReason, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// EnsureSecurityRecord creates the per-user record on first need and returns
// it either way.
func (r *PostgresRepository) EnsureSecurityRecord(ctx context.Context, userID string) (*domain.SecurityRecord, error) {
	query := `
		INSERT INTO security_records (user_id, is_locked, lockout_count, force_password_reset, updated_at)
		VALUES ($1, false, 0, false, now())
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + securityRecordColumns + `;
	`
	rec, err := scanSecurityRecord(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure security record: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) GetSecurityRecord(ctx context.Context, userID string) (*domain.SecurityRecord, error) {
	query := `
		SELECT ` + securityRecordColumns + `
		FROM security_records
		WHERE user_id = $1
		LIMIT 1;
	`
	rec, err := scanSecurityRecord(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get security record: %w", err)
	}
	return rec, nil
}

// ImposeLockout increments the lockout counter and sets the lock fields in
// one statement, so concurrent failure evaluations cannot lose an increment.
func (r *PostgresRepository) ImposeLockout(ctx context.Context, userID string, until time.Time, reason string) (*domain.SecurityRecord, error) {
	query := `
		UPDATE security_records
		SET is_locked = true,
		    lockout_count = lockout_count + 1,
		    lockout_until = $2,
		    last_lockout_reason = $3,
		    updated_at = now()
		WHERE user_id = $1
		RETURNING ` + securityRecordColumns + `;
	`
	rec, err := scanSecurityRecord(r.db.QueryRow(ctx, query, userID, until, reason))
	if err != nil {
		return nil, fmt.Errorf("failed to impose lockout: %w", err)
	}
	return rec, nil
}

// ClearLockout lifts the lock only when one is set; the returned flag tells
// the caller whether this call won the race to clear it.
func (r *PostgresRepository) ClearLockout(ctx context.Context, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE security_records
		SET is_locked = false, lockout_until = NULL, updated_at = now()
		WHERE user_id = $1 AND is_locked = true
	`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to clear lockout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) ResetLockoutCount(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE security_records
		SET lockout_count = 0, is_locked = false, lockout_until = NULL, updated_at = now()
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to reset lockout count: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetForcePasswordReset(ctx context.Context, userID, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE security_records
		SET force_password_reset = true, force_password_reset_reason = $2, updated_at = now()
		WHERE user_id = $1
	`, userID, reason)
	if err != nil {
		return fmt.Errorf("failed to set force password reset: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearForcePasswordReset(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE security_records
		SET force_password_reset = false, force_password_reset_reason = '', updated_at = now()
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear force password reset: %w", err)
	}
	return nil
}

func (r *PostgresRepository) InsertAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if !entry.Event.Valid() {
		return fmt.Errorf("invalid audit event kind: %q", entry.Event)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, event, details, ip_address, user_agent, successful, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, now())
	`, entry.UserID, string(entry.Event), entry.Details, entry.IPAddress, entry.UserAgent, entry.Successful)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *PostgresRepository) QueryAuditEntries(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	query := `
		SELECT id, user_id, event, details, ip_address, user_agent, successful, created_at
		FROM audit_logs
		WHERE 1=1`
	args := []any{}

	addArg := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.UserID != "" {
		addArg(" AND user_id = $%d", filter.UserID)
	}
	if filter.Event != "" {
		if !filter.Event.Valid() {
			return nil, fmt.Errorf("invalid audit event kind: %q", filter.Event)
		}
		addArg(" AND event = $%d", string(filter.Event))
	}
	if filter.IPAddress != "" {
		addArg(" AND ip_address = $%d", filter.IPAddress)
	}
	if !filter.Since.IsZero() {
		addArg(" AND created_at >= $%d", filter.Since)
	}
	if !filter.Until.IsZero() {
		addArg(" AND created_at <= $%d", filter.Until)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	addArg(" LIMIT $%d", limit)
	if filter.Offset > 0 {
		addArg(" OFFSET $%d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var event string
		if err := rows.Scan(&entry.ID, &entry.UserID, &event, &entry.Details,
			&entry.IPAddress, &entry.UserAgent, &entry.Successful, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Event = domain.AuditEvent(event)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return entries, nil
}

// CountFailedLogins feeds the lockout and suspicious-activity decisions.
// COUNT(DISTINCT ip_address) skips NULL provenance by SQL semantics.
func (r *PostgresRepository) CountFailedLogins(ctx context.Context, userID string, since time.Time) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT ip_address)
		FROM audit_logs
		WHERE user_id = $1 AND event = $2 AND created_at >= $3;
	`
	var total, distinctIPs int
	err := r.db.QueryRow(ctx, query, userID, string(domain.EventLoginFailure), since).
		Scan(&total, &distinctIPs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count failed logins: %w", err)
	}
	return total, distinctIPs, nil
}

func (r *PostgresRepository) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
