package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrAlreadyExists is returned when a create collides with an existing record.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned when login input does not match a stored account.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSessionExpired is returned when a session token has passed its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a session token was explicitly revoked.
	ErrSessionRevoked = errors.New("application: session revoked")

	// ErrNoTeamSelected is returned when scheduling is attempted without a
	// team the user belongs to. The room issuer is never contacted in this
	// case, so no token is wasted.
	ErrNoTeamSelected = errors.New("application: no team selected")
	// ErrRoomIssuerUnavailable is returned when the external signaling
	// endpoint fails to mint a room token.
	ErrRoomIssuerUnavailable = errors.New("application: room issuer unavailable")
	// ErrMeetingNotPersisted is returned when the meeting append fails after
	// a token was already issued.
	ErrMeetingNotPersisted = errors.New("application: meeting not persisted")
	// ErrEmptyJoinCode is returned when join-by-code is attempted with a
	// blank code.
	ErrEmptyJoinCode = errors.New("application: empty join code")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
