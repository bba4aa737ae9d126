package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

type accountStoreStub struct {
	created     []persistence.User
	createdHash string
	createErr   error

	credentials persistence.UserCredentials
	credsErr    error
}

func (s *accountStoreStub) CreateUser(ctx context.Context, user persistence.User, passwordHash string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, user)
	s.createdHash = passwordHash
	return nil
}

func (s *accountStoreStub) GetUser(ctx context.Context, id string) (persistence.User, error) {
	for _, user := range s.created {
		if user.ID == id {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (s *accountStoreStub) GetUserCredentialsByEmail(ctx context.Context, email string) (persistence.UserCredentials, error) {
	if s.credsErr != nil {
		return persistence.UserCredentials{}, s.credsErr
	}
	return s.credentials, nil
}

type sessionStoreStub struct {
	sessions map[string]persistence.Session

	createErr  error
	deletedRef time.Time
}

func (s *sessionStoreStub) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if s.createErr != nil {
		return persistence.Session{}, s.createErr
	}
	if s.sessions == nil {
		s.sessions = make(map[string]persistence.Session)
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *sessionStoreStub) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *sessionStoreStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) error {
	session, ok := s.sessions[token]
	if !ok {
		return persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return nil
}

func (s *sessionStoreStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	s.deletedRef = reference
	return nil
}

func counterGenerator(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newAuthFixture(accounts *accountStoreStub, sessions *sessionStoreStub, now func() time.Time) *AuthService {
	svc := NewAuthService(accounts, sessions, counterGenerator("id"), counterGenerator("tok"), now, time.Hour, nil)
	// deterministic password handling keeps the tests off argon2 work factors
	svc.hashPassword = func(password string) (string, error) { return "hashed:" + password, nil }
	svc.verifyPassword = func(hash, password string) error {
		if hash == "hashed:"+password {
			return nil
		}
		return ErrInvalidCredentials
	}
	return svc
}

func TestAuthService_Register(t *testing.T) {
	now := func() time.Time { return time.Unix(1000, 0) }

	t.Run("creates a fresh profile", func(t *testing.T) {
		accounts := &accountStoreStub{}
		svc := newAuthFixture(accounts, &sessionStoreStub{}, now)

		user, err := svc.Register(context.Background(), RegisterParams{
			DisplayName: "Ada",
			Email:       "Ada@Example.com",
			Password:    "correct horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "ada@example.com" {
			t.Fatalf("email not normalised: %q", user.Email)
		}
		if user.Status != "Available" {
			t.Fatalf("expected default status, got %q", user.Status)
		}
		if len(user.Teams) != 0 {
			t.Fatalf("new account should have no teams: %v", user.Teams)
		}
		if accounts.createdHash != "hashed:correct horse" {
			t.Fatalf("password not hashed before store: %q", accounts.createdHash)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		svc := newAuthFixture(&accountStoreStub{}, &sessionStoreStub{}, now)

		_, err := svc.Register(context.Background(), RegisterParams{Email: "not-an-email", Password: "short"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"display_name", "email", "password"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		accounts := &accountStoreStub{createErr: persistence.ErrAlreadyExists}
		svc := newAuthFixture(accounts, &sessionStoreStub{}, now)

		_, err := svc.Register(context.Background(), RegisterParams{
			DisplayName: "Ada",
			Email:       "ada@example.com",
			Password:    "correct horse",
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	now := func() time.Time { return time.Unix(1000, 0) }
	accounts := &accountStoreStub{credentials: persistence.UserCredentials{
		User:         persistence.User{ID: "user-1", Email: "ada@example.com", DisplayName: "Ada"},
		PasswordHash: "hashed:correct horse",
	}}

	t.Run("issues a session", func(t *testing.T) {
		sessions := &sessionStoreStub{}
		svc := newAuthFixture(accounts, sessions, now)

		result, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Email:    "ada@example.com",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != "user-1" {
			t.Fatalf("unexpected user %q", result.User.ID)
		}
		if result.Session.Token == "" {
			t.Fatal("expected a session token")
		}
		if !result.Session.ExpiresAt.Equal(time.Unix(1000, 0).Add(time.Hour)) {
			t.Fatalf("unexpected expiry %v", result.Session.ExpiresAt)
		}
		if !sessions.deletedRef.Equal(time.Unix(1000, 0)) {
			t.Fatal("expired sessions not pruned before issue")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newAuthFixture(accounts, &sessionStoreStub{}, now)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown account maps to invalid credentials", func(t *testing.T) {
		svc := newAuthFixture(&accountStoreStub{credsErr: persistence.ErrNotFound}, &sessionStoreStub{}, now)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("blank input", func(t *testing.T) {
		svc := newAuthFixture(accounts, &sessionStoreStub{}, now)

		if _, err := svc.Authenticate(context.Background(), AuthenticateParams{}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	base := time.Unix(1000, 0)
	now := func() time.Time { return base }

	newSessions := func(session persistence.Session) *sessionStoreStub {
		return &sessionStoreStub{sessions: map[string]persistence.Session{session.Token: session}}
	}

	t.Run("valid session resolves the principal", func(t *testing.T) {
		sessions := newSessions(persistence.Session{UserID: "user-1", Token: "tok", ExpiresAt: base.Add(time.Hour)})
		svc := newAuthFixture(&accountStoreStub{}, sessions, now)

		principal, err := svc.ValidateSession(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if principal.UserID != "user-1" {
			t.Fatalf("unexpected principal %+v", principal)
		}
	})

	t.Run("expired", func(t *testing.T) {
		sessions := newSessions(persistence.Session{UserID: "user-1", Token: "tok", ExpiresAt: base.Add(-time.Minute)})
		svc := newAuthFixture(&accountStoreStub{}, sessions, now)

		if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("revoked", func(t *testing.T) {
		revoked := base.Add(-time.Minute)
		sessions := newSessions(persistence.Session{UserID: "user-1", Token: "tok", ExpiresAt: base.Add(time.Hour), RevokedAt: &revoked})
		svc := newAuthFixture(&accountStoreStub{}, sessions, now)

		if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := newAuthFixture(&accountStoreStub{}, &sessionStoreStub{}, now)

		if _, err := svc.ValidateSession(context.Background(), "ghost"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	base := time.Unix(1000, 0)
	sessions := &sessionStoreStub{sessions: map[string]persistence.Session{
		"tok": {UserID: "user-1", Token: "tok", ExpiresAt: base.Add(time.Hour)},
	}}
	svc := newAuthFixture(&accountStoreStub{}, sessions, func() time.Time { return base })

	if err := svc.RevokeSession(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessions.sessions["tok"].RevokedAt == nil {
		t.Fatal("session not marked revoked")
	}

	if err := svc.RevokeSession(context.Background(), "missing"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
