package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/meeting-coordinator/internal/application"
)

type userService interface {
	GetUser(ctx context.Context, id string) (application.User, error)
	UpdateStatus(ctx context.Context, principal application.Principal, status string) error
}

type UserHandler struct {
	service   userService
	responder responder
	logger    *slog.Logger
}

func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

// Get returns the profile identified by the path id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok || strings.TrimSpace(userID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, userToDTO(user))
}

// UpdateStatus sets the presence status on the principal's own profile.
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := h.service.UpdateStatus(r.Context(), principal, req.Status); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type statusRequest struct {
	Status string `json:"status"`
}

type userDTO struct {
	UID           string   `json:"uid"`
	DisplayName   string   `json:"displayName"`
	Email         string   `json:"email"`
	Status        string   `json:"status"`
	Teams         []string `json:"teams"`
	PhotoURL      string   `json:"photoURL"`
	EmailVerified bool     `json:"emailVerified"`
}

func userToDTO(user application.User) userDTO {
	teams := user.Teams
	if teams == nil {
		teams = []string{}
	}
	return userDTO{
		UID:           user.ID,
		DisplayName:   user.DisplayName,
		Email:         user.Email,
		Status:        user.Status,
		Teams:         teams,
		PhotoURL:      user.PhotoURL,
		EmailVerified: user.EmailVerified,
	}
}
