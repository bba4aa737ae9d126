package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// AccountStore exposes the user persistence operations needed by the auth service.
type AccountStore interface {
	CreateUser(ctx context.Context, user persistence.User, passwordHash string) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserCredentialsByEmail(ctx context.Context, email string) (persistence.UserCredentials, error)
}

// SessionStore captures the persistence interactions for issued sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error)
	GetSession(ctx context.Context, token string) (persistence.Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// PasswordHasher derives a storable hash from a plain password.
type PasswordHasher func(password string) (string, error)

// defaultStatus is assigned to freshly registered accounts.
const defaultStatus = "Available"

// AuthService coordinates registration, login and session validation.
type AuthService struct {
	accounts       AccountStore
	sessions       SessionStore
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	idGenerator    func() string
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService wires dependencies for authentication flows. Nil hash and
// verify functions fall back to the package argon2id implementation.
func NewAuthService(accounts AccountStore, sessions SessionStore, idGenerator, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if tokenGenerator == nil {
		tokenGenerator = idGenerator
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:       accounts,
		sessions:       sessions,
		hashPassword:   HashPassword,
		verifyPassword: VerifyPassword,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register creates an account on first sign-in. New profiles start with the
// default presence status and an empty team list.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (result User, err error) {
	if s == nil || s.accounts == nil {
		err = fmt.Errorf("account store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	displayName := strings.TrimSpace(params.DisplayName)

	logger := s.loggerWith(ctx, "Register", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.ID).InfoContext(ctx, "account registered")
	}()

	vErr := &ValidationError{}
	if displayName == "" {
		vErr.add("display_name", "display name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, mailErr := mail.ParseAddress(email); mailErr != nil {
		vErr.add("email", "email is invalid")
	}
	if len(params.Password) < 8 {
		vErr.add("password", "password must be at least 8 characters")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var hash string
	hash, err = s.hashPassword(params.Password)
	if err != nil {
		return
	}

	user := persistence.User{
		ID:            s.idGenerator(),
		Email:         email,
		DisplayName:   displayName,
		Status:        defaultStatus,
		PhotoURL:      strings.TrimSpace(params.PhotoURL),
		EmailVerified: false,
	}

	if err = s.accounts.CreateUser(ctx, user, hash); err != nil {
		if errors.Is(err, persistence.ErrAlreadyExists) {
			err = ErrAlreadyExists
		}
		return
	}

	result = userFromPersistence(user)
	return
}

// Authenticate validates credentials and issues a new session token.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil || s.accounts == nil {
		err = fmt.Errorf("account store not configured")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"user_id", result.User.ID,
			"session_id", result.Session.ID,
		).InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	var creds persistence.UserCredentials
	creds, err = s.accounts.GetUserCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verifyPassword(creds.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now()
	if err = s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		return
	}

	session := persistence.Session{
		ID:        s.idGenerator(),
		UserID:    creds.User.ID,
		Token:     s.tokenGenerator(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	var persisted persistence.Session
	persisted, err = s.sessions.CreateSession(ctx, session)
	if err != nil {
		return
	}

	result = AuthenticateResult{
		User:    userFromPersistence(creds.User),
		Session: sessionFromPersistence(persisted),
	}
	return
}

// ValidateSession resolves a session token into the acting principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil || s.sessions == nil {
		return Principal{}, fmt.Errorf("session store not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Principal{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, trimmed)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}

	now := s.now()
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		return Principal{}, ErrSessionRevoked
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
		return Principal{}, ErrSessionExpired
	}

	return Principal{UserID: session.UserID}, nil
}

// RevokeSession invalidates an existing session token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session store not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "RevokeSession")
	if err := s.sessions.RevokeSession(ctx, trimmed, s.now()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrUnauthorized
		}
		logger.ErrorContext(ctx, "session revocation failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "session revoked")
	return nil
}
