package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a SQLite backed user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user profile with its password hash.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User, passwordHash string) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, status, photo_url, email_verified, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.Status,
		user.PhotoURL,
		boolToInt(user.EmailVerified),
		passwordHash,
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)
	return mapError(err)
}

// GetUser retrieves a user profile, including team memberships, by id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, status, photo_url, email_verified, created_at, updated_at
		FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		return persistence.User{}, mapError(err)
	}

	user.Teams, err = r.memberTeams(ctx, user.ID)
	if err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user profile by email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, status, photo_url, email_verified, created_at, updated_at
		FROM users WHERE email = ?`, email)

	user, err := scanUser(row)
	if err != nil {
		return persistence.User{}, mapError(err)
	}

	user.Teams, err = r.memberTeams(ctx, user.ID)
	if err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

// GetUserCredentialsByEmail retrieves the profile plus stored password hash.
func (r *UserRepository) GetUserCredentialsByEmail(ctx context.Context, email string) (persistence.UserCredentials, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, status, photo_url, email_verified, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, email)

	var (
		user      persistence.User
		hash      string
		verified  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Status, &user.PhotoURL, &verified, &hash, &createdAt, &updatedAt)
	if err != nil {
		return persistence.UserCredentials{}, mapError(err)
	}

	user.EmailVerified = verified != 0
	user.CreatedAt, user.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return persistence.UserCredentials{}, err
	}

	user.Teams, err = r.memberTeams(ctx, user.ID)
	if err != nil {
		return persistence.UserCredentials{}, err
	}

	return persistence.UserCredentials{User: user, PasswordHash: hash}, nil
}

// UpdateStatus sets the presence status on a user profile.
func (r *UserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.db.ExecContext(ctx, `
		UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.RFC3339), id)
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

// AddTeam records a team membership for a user. Adding an existing
// membership is a no-op.
func (r *UserRepository) AddTeam(ctx context.Context, userID, teamID string) error {
	_, err := r.db.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO team_members (user_id, team_id) VALUES (?, ?)`,
		userID, teamID)
	return mapError(err)
}

// RemoveTeam deletes a team membership for a user.
func (r *UserRepository) RemoveTeam(ctx context.Context, userID, teamID string) error {
	_, err := r.db.db.ExecContext(ctx, `
		DELETE FROM team_members WHERE user_id = ? AND team_id = ?`,
		userID, teamID)
	return mapError(err)
}

func (r *UserRepository) memberTeams(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT team_id FROM team_members WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var teamID string
		if err := rows.Scan(&teamID); err != nil {
			return nil, mapError(err)
		}
		teams = append(teams, teamID)
	}
	return teams, mapError(rows.Err())
}

func scanUser(row *sql.Row) (persistence.User, error) {
	var (
		user      persistence.User
		verified  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Status, &user.PhotoURL, &verified, &createdAt, &updatedAt)
	if err != nil {
		return persistence.User{}, err
	}
	user.EmailVerified = verified != 0
	user.CreatedAt, user.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", column, value, err)
	}
	return t, nil
}

func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	created, err := parseTime("created_at", createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	updated, err := parseTime("updated_at", updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return created, updated, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
