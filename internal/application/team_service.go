package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// TeamStore exposes the team persistence operations used by services.
type TeamStore interface {
	CreateTeam(ctx context.Context, team persistence.Team) error
	GetTeam(ctx context.Context, id string) (persistence.Team, error)
	ListTeams(ctx context.Context) ([]persistence.Team, error)
	AppendMeeting(ctx context.Context, teamID string, meeting persistence.Meeting) error
}

// MembershipStore mutates a user's team list.
type MembershipStore interface {
	AddTeam(ctx context.Context, userID, teamID string) error
	RemoveTeam(ctx context.Context, userID, teamID string) error
}

// TeamService manages teams and team membership.
type TeamService struct {
	teams       TeamStore
	memberships MembershipStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTeamService wires dependencies for team operations.
func NewTeamService(teams TeamStore, memberships MembershipStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TeamService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TeamService{
		teams:       teams,
		memberships: memberships,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *TeamService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TeamService", operation, attrs...)
}

// CreateTeam creates a team and joins the creator to it.
func (s *TeamService) CreateTeam(ctx context.Context, principal Principal, name string) (Team, error) {
	if s == nil || s.teams == nil {
		return Team{}, fmt.Errorf("team store not configured")
	}
	if principal.UserID == "" {
		return Team{}, ErrUnauthorized
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return Team{}, vErr
	}

	logger := s.loggerWith(ctx, "CreateTeam", "user_id", principal.UserID)

	team := persistence.Team{
		ID:        s.idGenerator(),
		Name:      trimmed,
		CreatedAt: s.now(),
	}
	if err := s.teams.CreateTeam(ctx, team); err != nil {
		logger.ErrorContext(ctx, "team creation failed", "error", err)
		return Team{}, err
	}

	if s.memberships != nil {
		if err := s.memberships.AddTeam(ctx, principal.UserID, team.ID); err != nil {
			logger.ErrorContext(ctx, "creator membership failed", "team_id", team.ID, "error", err)
			return Team{}, err
		}
	}

	logger.InfoContext(ctx, "team created", "team_id", team.ID)
	return teamFromPersistence(team), nil
}

// JoinTeam adds the principal to an existing team.
func (s *TeamService) JoinTeam(ctx context.Context, principal Principal, teamID string) error {
	if s == nil || s.teams == nil || s.memberships == nil {
		return fmt.Errorf("team store not configured")
	}
	if principal.UserID == "" {
		return ErrUnauthorized
	}

	trimmed := strings.TrimSpace(teamID)
	if trimmed == "" {
		return ErrNotFound
	}

	if _, err := s.teams.GetTeam(ctx, trimmed); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.memberships.AddTeam(ctx, principal.UserID, trimmed); err != nil {
		return err
	}

	s.loggerWith(ctx, "JoinTeam", "user_id", principal.UserID, "team_id", trimmed).
		InfoContext(ctx, "joined team")
	return nil
}

// LeaveTeam removes the principal from a team.
func (s *TeamService) LeaveTeam(ctx context.Context, principal Principal, teamID string) error {
	if s == nil || s.memberships == nil {
		return fmt.Errorf("team store not configured")
	}
	if principal.UserID == "" {
		return ErrUnauthorized
	}

	trimmed := strings.TrimSpace(teamID)
	if trimmed == "" {
		return ErrNotFound
	}

	if err := s.memberships.RemoveTeam(ctx, principal.UserID, trimmed); err != nil {
		return err
	}

	s.loggerWith(ctx, "LeaveTeam", "user_id", principal.UserID, "team_id", trimmed).
		InfoContext(ctx, "left team")
	return nil
}

// ListTeams returns every team, meeting lists included.
func (s *TeamService) ListTeams(ctx context.Context) ([]Team, error) {
	if s == nil || s.teams == nil {
		return nil, fmt.Errorf("team store not configured")
	}

	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Team, 0, len(teams))
	for _, team := range teams {
		out = append(out, teamFromPersistence(team))
	}
	return out, nil
}
