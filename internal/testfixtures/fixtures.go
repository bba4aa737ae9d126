// Package testfixtures provides deterministic builders, clocks and stubs
// shared by tests across the coordinator packages.
package testfixtures

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

var (
	userCounter    uint64
	teamCounter    uint64
	meetingCounter uint64
	sessionCounter uint64
)

// ReferenceTime returns the fixed instant tests use as "now" unless they need
// time progression.
func ReferenceTime() time.Time {
	return time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
}

// NewUser builds a user record with generated identifiers. Mutations can be
// applied through the optional modify callbacks.
func NewUser(modify ...func(*persistence.User)) persistence.User {
	n := atomic.AddUint64(&userCounter, 1)
	now := ReferenceTime()
	user := persistence.User{
		ID:          fmt.Sprintf("user-%d", n),
		Email:       fmt.Sprintf("user%d@example.com", n),
		DisplayName: fmt.Sprintf("User %d", n),
		Status:      "Available",
		Teams:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, fn := range modify {
		fn(&user)
	}
	return user
}

// NewTeam builds a team record without meetings.
func NewTeam(modify ...func(*persistence.Team)) persistence.Team {
	n := atomic.AddUint64(&teamCounter, 1)
	now := ReferenceTime()
	team := persistence.Team{
		ID:        fmt.Sprintf("team-%d", n),
		Name:      fmt.Sprintf("Team %d", n),
		Meetings:  []persistence.Meeting{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, fn := range modify {
		fn(&team)
	}
	return team
}

// NewMeeting builds a meeting scheduled at the supplied unix time.
func NewMeeting(at int64, modify ...func(*persistence.Meeting)) persistence.Meeting {
	n := atomic.AddUint64(&meetingCounter, 1)
	meeting := persistence.Meeting{
		Name:  fmt.Sprintf("Meeting %d", n),
		Time:  at,
		Token: fmt.Sprintf("room-token-%d", n),
	}
	for _, fn := range modify {
		fn(&meeting)
	}
	return meeting
}

// NewSession builds a session for the given user that expires one day after
// the reference time.
func NewSession(userID string, modify ...func(*persistence.Session)) persistence.Session {
	n := atomic.AddUint64(&sessionCounter, 1)
	now := ReferenceTime()
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%d", n),
		UserID:    userID,
		Token:     fmt.Sprintf("session-token-%d", n),
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}
	for _, fn := range modify {
		fn(&session)
	}
	return session
}

// ScriptedIssuer replays a fixed sequence of room tokens and errors, recording
// how many times it was asked for a room.
type ScriptedIssuer struct {
	mu     sync.Mutex
	tokens []string
	errs   []error
	calls  int
}

// NewScriptedIssuer returns an issuer whose nth call yields tokens[n] and
// errs[n]. Calls beyond the script repeat the last scripted values.
func NewScriptedIssuer(tokens []string, errs []error) *ScriptedIssuer {
	return &ScriptedIssuer{tokens: tokens, errs: errs}
}

// RequestRoom returns the next scripted token or error.
func (s *ScriptedIssuer) RequestRoom(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.calls
	s.calls++

	if len(s.errs) > 0 {
		errIndex := index
		if errIndex >= len(s.errs) {
			errIndex = len(s.errs) - 1
		}
		if err := s.errs[errIndex]; err != nil {
			return "", err
		}
	}

	if len(s.tokens) == 0 {
		return "", fmt.Errorf("scripted issuer has no tokens")
	}
	if index >= len(s.tokens) {
		index = len(s.tokens) - 1
	}
	return s.tokens[index], nil
}

// Calls reports how many room requests the issuer has served.
func (s *ScriptedIssuer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
