package sqlite

import (
	"context"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository on SQLite.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a SQLite backed session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession persists a new session and returns the stored record.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		session.ID,
		session.UserID,
		session.Token,
		session.ExpiresAt.UTC().Format(time.RFC3339),
		session.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// GetSession retrieves a session by its token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, expires_at, created_at, revoked_at
		FROM sessions WHERE token = ?`, token)

	var (
		session   persistence.Session
		expiresAt string
		createdAt string
		revokedAt *string
	)
	if err := row.Scan(&session.ID, &session.UserID, &session.Token, &expiresAt, &createdAt, &revokedAt); err != nil {
		return persistence.Session{}, mapError(err)
	}

	var err error
	if session.ExpiresAt, err = parseTime("expires_at", expiresAt); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt != nil {
		t, err := parseTime("revoked_at", *revokedAt)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &t
	}
	return session, nil
}

// RevokeSession marks a session as revoked.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	result, err := r.db.db.ExecContext(ctx, `
		UPDATE sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`,
		revokedAt.UTC().Format(time.RFC3339), token)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired before the reference
// time.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := r.db.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE expires_at < ?`,
		reference.UTC().Format(time.RFC3339))
	return mapError(err)
}
