package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/meeting-coordinator/internal/application"
)

type teamService interface {
	CreateTeam(ctx context.Context, principal application.Principal, name string) (application.Team, error)
	JoinTeam(ctx context.Context, principal application.Principal, teamID string) error
	LeaveTeam(ctx context.Context, principal application.Principal, teamID string) error
	ListTeams(ctx context.Context) ([]application.Team, error)
}

type TeamHandler struct {
	service   teamService
	responder responder
	logger    *slog.Logger
}

func NewTeamHandler(service teamService, logger *slog.Logger) *TeamHandler {
	base := defaultLogger(logger)
	return &TeamHandler{service: service, responder: newResponder(base), logger: base}
}

// List returns every team, meeting lists included.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	teams, err := h.service.ListTeams(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, team := range teams {
		out = append(out, teamToDTO(team))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}

// Create creates a team owned by no one in particular; the creator simply
// becomes its first member.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	team, err := h.service.CreateTeam(r.Context(), principal, req.Name)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.logger, "TeamHandler", "Create").
		With("team_id", team.ID).InfoContext(r.Context(), "team created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, teamToDTO(team))
}

// Join adds the principal to the team identified by the path id.
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.membershipChange(w, r, "Join", func(ctx context.Context, principal application.Principal, teamID string) error {
		return h.service.JoinTeam(ctx, principal, teamID)
	})
}

// Leave removes the principal from the team identified by the path id.
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.membershipChange(w, r, "Leave", func(ctx context.Context, principal application.Principal, teamID string) error {
		return h.service.LeaveTeam(ctx, principal, teamID)
	})
}

func (h *TeamHandler) membershipChange(w http.ResponseWriter, r *http.Request, operation string, apply func(context.Context, application.Principal, string) error) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	teamID, ok := TeamIDFromContext(r.Context())
	if !ok || strings.TrimSpace(teamID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTeamID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := apply(r.Context(), principal, teamID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.logger, "TeamHandler", operation).
		With("team_id", teamID).InfoContext(r.Context(), "membership updated")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type teamRequest struct {
	Name string `json:"name"`
}

type teamDTO struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Meeting []meetingDTO `json:"meeting"`
}

type meetingDTO struct {
	Name   string `json:"name"`
	Agenda string `json:"agenda"`
	Time   int64  `json:"time"`
	Token  string `json:"token"`
}

func teamToDTO(team application.Team) teamDTO {
	meetings := make([]meetingDTO, 0, len(team.Meetings))
	for _, meeting := range team.Meetings {
		meetings = append(meetings, meetingDTO(meeting))
	}
	return teamDTO{
		ID:      team.ID,
		Name:    team.Name,
		Meeting: meetings,
	}
}
