package persistence

import (
	"context"
	"time"
)

// UserRepository exposes profile and membership operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User, passwordHash string) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddTeam(ctx context.Context, userID, teamID string) error
	RemoveTeam(ctx context.Context, userID, teamID string) error
}

// TeamRepository stores teams and their embedded meeting lists.
//
// AppendMeeting must be additive: appending a meeting never rewrites the
// whole list, so concurrent appends from different clients all survive.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team Team) error
	GetTeam(ctx context.Context, id string) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	AppendMeeting(ctx context.Context, teamID string, meeting Meeting) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
