package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/meeting-coordinator/internal/application"
	"github.com/example/meeting-coordinator/internal/feed"
)

type meetingService interface {
	ScheduleMeeting(ctx context.Context, params application.ScheduleMeetingParams) (feed.Entry, error)
	ListUpcomingMeetings(ctx context.Context, principal application.Principal) ([]feed.Entry, error)
	StartInstantMeeting(ctx context.Context) (string, error)
	JoinByCode(code string) (string, error)
}

type MeetingHandler struct {
	service   meetingService
	responder responder
	logger    *slog.Logger
}

func NewMeetingHandler(service meetingService, logger *slog.Logger) *MeetingHandler {
	base := defaultLogger(logger)
	return &MeetingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *MeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MeetingHandler", operation, attrs...)
}

// Feed returns the principal's upcoming meetings, merged across member teams
// and ordered by scheduled time.
func (h *MeetingHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	entries, err := h.service.ListUpcomingMeetings(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]feedEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, feedEntryToDTO(entry))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}

// Schedule runs the scheduling flow and returns the resulting feed entry so
// clients can apply it locally without a re-fetch.
func (h *MeetingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	entry, err := h.service.ScheduleMeeting(r.Context(), application.ScheduleMeetingParams{
		Principal: principal,
		Input: application.MeetingInput{
			TeamID: req.Team,
			Name:   req.Name,
			Agenda: req.Agenda,
			Time:   req.Time,
		},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Schedule", "team_id", entry.TeamID).InfoContext(r.Context(), "meeting scheduled")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, feedEntryToDTO(entry))
}

// Instant obtains a room token for immediate navigation; nothing is stored.
func (h *MeetingHandler) Instant(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := h.service.StartInstantMeeting(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Instant").InfoContext(r.Context(), "instant room issued")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, roomResponse{Token: token})
}

// Join exchanges a meeting code for a room token. The code itself is the
// token; no liveness check is performed.
func (h *MeetingHandler) Join(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	token, err := h.service.JoinByCode(req.Code)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomResponse{Token: token})
}

type scheduleRequest struct {
	Team   string `json:"team"`
	Name   string `json:"name"`
	Agenda string `json:"agenda"`
	Time   int64  `json:"time"`
}

type joinRequest struct {
	Code string `json:"code"`
}

type roomResponse struct {
	Token string `json:"token"`
}

type feedEntryDTO struct {
	Team     string     `json:"team"`
	TeamName string     `json:"team_name"`
	Meeting  meetingDTO `json:"meet"`
}

func feedEntryToDTO(entry feed.Entry) feedEntryDTO {
	return feedEntryDTO{
		Team:     entry.TeamID,
		TeamName: entry.TeamName,
		Meeting:  meetingDTO(entry.Meeting),
	}
}
