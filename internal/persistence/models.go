package persistence

import "time"

// User represents an account profile in the coordination domain. Teams holds
// the identifiers of every team the user is a member of, in join order.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	Status        string
	PhotoURL      string
	EmailVerified bool
	Teams         []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserCredentials pairs a user profile with its stored password hash for
// authentication flows. The hash never leaves the persistence boundary
// otherwise.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Team owns an append-ordered list of embedded meeting records.
type Team struct {
	ID        string
	Name      string
	Meetings  []Meeting
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meeting is a scheduled entry embedded in a team. Time is seconds since the
// Unix epoch. Token is the opaque room identifier minted by the external
// issuer; it is assigned before the record is persisted and is never empty.
// Meetings are immutable once created.
type Meeting struct {
	Name   string
	Agenda string
	Time   int64
	Token  string
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
