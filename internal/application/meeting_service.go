package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/example/meeting-coordinator/internal/feed"
	"github.com/example/meeting-coordinator/internal/persistence"
)

// RoomIssuer mints room tokens from the external signaling authority.
type RoomIssuer interface {
	RequestRoom(ctx context.Context) (string, error)
}

// MeetingService orchestrates meeting scheduling, the upcoming-meetings feed,
// and the instant/join room flows.
type MeetingService struct {
	teams      TeamStore
	membership *MembershipResolver
	issuer     RoomIssuer
	now        func() time.Time
	logger     *slog.Logger
}

// NewMeetingService wires dependencies for meeting coordination.
func NewMeetingService(teams TeamStore, membership *MembershipResolver, issuer RoomIssuer, now func() time.Time, logger *slog.Logger) *MeetingService {
	if now == nil {
		now = time.Now
	}
	return &MeetingService{
		teams:      teams,
		membership: membership,
		issuer:     issuer,
		now:        now,
		logger:     defaultLogger(logger),
	}
}

func (s *MeetingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MeetingService", operation, attrs...)
}

// ScheduleMeeting runs the scheduling flow: validate the team selection,
// obtain a room token, then append the meeting to the team's list. The token
// request strictly precedes the append; an append is never attempted without
// a token. On success the returned entry is ready for an incremental
// feed.Apply, sparing a full re-fetch.
func (s *MeetingService) ScheduleMeeting(ctx context.Context, params ScheduleMeetingParams) (entry feed.Entry, err error) {
	if s == nil || s.teams == nil || s.issuer == nil {
		err = fmt.Errorf("meeting service not configured")
		return
	}

	input := params.Input
	teamID := strings.TrimSpace(input.TeamID)

	logger := s.loggerWith(ctx, "ScheduleMeeting",
		"user_id", params.Principal.UserID,
		"team_id", teamID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "scheduling failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "meeting scheduled", "time", entry.Meeting.Time)
	}()

	// The team gate comes first so a rejected form never wastes a token.
	if teamID == "" {
		err = ErrNoTeamSelected
		return
	}

	var memberTeams []string
	memberTeams, err = s.membership.ResolveMemberTeams(ctx, params.Principal.UserID)
	if err != nil {
		return
	}
	if !slices.Contains(memberTeams, teamID) {
		err = ErrNoTeamSelected
		return
	}

	var team persistence.Team
	team, err = s.teams.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrNoTeamSelected
		}
		return
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Time <= 0 {
		vErr.add("time", "time is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var token string
	token, err = s.issuer.RequestRoom(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrRoomIssuerUnavailable, err)
		return
	}

	meeting := persistence.Meeting{
		Name:   strings.TrimSpace(input.Name),
		Agenda: input.Agenda,
		Time:   input.Time,
		Token:  token,
	}

	if err = s.teams.AppendMeeting(ctx, teamID, meeting); err != nil {
		// The issued token is not reclaimed; the issuer contract has no
		// release operation.
		err = fmt.Errorf("%w: %v", ErrMeetingNotPersisted, err)
		return
	}

	entry = feed.Entry{
		TeamID:   team.ID,
		TeamName: team.Name,
		Meeting:  feed.Meeting(meeting),
	}
	return
}

// ListUpcomingMeetings builds the principal's feed: every meeting from teams
// the user belongs to, future-only within the grace window, ascending by
// time.
func (s *MeetingService) ListUpcomingMeetings(ctx context.Context, principal Principal) ([]feed.Entry, error) {
	if s == nil || s.teams == nil {
		return nil, fmt.Errorf("meeting service not configured")
	}

	memberTeams, err := s.membership.ResolveMemberTeams(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if len(memberTeams) == 0 {
		return nil, nil
	}

	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]feed.Team, 0, len(memberTeams))
	for _, team := range teams {
		if slices.Contains(memberTeams, team.ID) {
			snapshot = append(snapshot, feedTeam(team))
		}
	}

	return feed.Build(snapshot, s.now()), nil
}

// StartInstantMeeting obtains a room token for immediate use. Nothing is
// persisted; instant meetings are ephemeral.
func (s *MeetingService) StartInstantMeeting(ctx context.Context) (string, error) {
	if s == nil || s.issuer == nil {
		return "", fmt.Errorf("meeting service not configured")
	}

	token, err := s.issuer.RequestRoom(ctx)
	if err != nil {
		s.loggerWith(ctx, "StartInstantMeeting").
			ErrorContext(ctx, "instant meeting failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrRoomIssuerUnavailable, err)
	}
	return token, nil
}

// JoinByCode accepts a meeting code and yields it as the room token. The
// literal input is the token; no liveness check is made against the issuer.
func (s *MeetingService) JoinByCode(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", ErrEmptyJoinCode
	}
	return trimmed, nil
}
