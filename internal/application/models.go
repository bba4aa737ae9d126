package application

import (
	"time"

	"github.com/example/meeting-coordinator/internal/feed"
	"github.com/example/meeting-coordinator/internal/persistence"
)

// Principal identifies the authenticated user behind a request.
type Principal struct {
	UserID string
}

// User is the profile projection returned to callers.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	Status        string
	PhotoURL      string
	EmailVerified bool
	Teams         []string
}

// Team is the team projection returned to callers, meeting list included.
type Team struct {
	ID       string
	Name     string
	Meetings []Meeting
}

// Meeting mirrors the persisted embedded meeting record.
type Meeting struct {
	Name   string
	Agenda string
	Time   int64
	Token  string
}

// Session is the issued session projection.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// RegisterParams carries input for account creation.
type RegisterParams struct {
	DisplayName string
	Email       string
	Password    string
	PhotoURL    string
}

// AuthenticateParams carries login input.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult pairs the authenticated user with the issued session.
type AuthenticateResult struct {
	User    User
	Session Session
}

// MeetingInput is the scheduling form: the selected team plus the meeting
// fields entered by the user. Time is seconds since the Unix epoch.
type MeetingInput struct {
	TeamID string
	Name   string
	Agenda string
	Time   int64
}

// ScheduleMeetingParams carries input for the scheduling flow.
type ScheduleMeetingParams struct {
	Principal Principal
	Input     MeetingInput
}

func userFromPersistence(user persistence.User) User {
	teams := make([]string, len(user.Teams))
	copy(teams, user.Teams)
	return User{
		ID:            user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Status:        user.Status,
		PhotoURL:      user.PhotoURL,
		EmailVerified: user.EmailVerified,
		Teams:         teams,
	}
}

func teamFromPersistence(team persistence.Team) Team {
	meetings := make([]Meeting, 0, len(team.Meetings))
	for _, meeting := range team.Meetings {
		meetings = append(meetings, Meeting(meeting))
	}
	return Team{
		ID:       team.ID,
		Name:     team.Name,
		Meetings: meetings,
	}
}

func sessionFromPersistence(session persistence.Session) Session {
	return Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
}

func feedTeam(team persistence.Team) feed.Team {
	meetings := make([]feed.Meeting, 0, len(team.Meetings))
	for _, meeting := range team.Meetings {
		meetings = append(meetings, feed.Meeting(meeting))
	}
	return feed.Team{
		ID:       team.ID,
		Name:     team.Name,
		Meetings: meetings,
	}
}
