package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/meeting-coordinator/internal/application"
	"github.com/example/meeting-coordinator/internal/feed"
)

type meetingServiceStub struct {
	entry       feed.Entry
	scheduleErr error
	scheduled   []application.ScheduleMeetingParams

	feedEntries []feed.Entry
	feedErr     error

	instantToken string
	instantErr   error
}

func (s *meetingServiceStub) ScheduleMeeting(ctx context.Context, params application.ScheduleMeetingParams) (feed.Entry, error) {
	s.scheduled = append(s.scheduled, params)
	if s.scheduleErr != nil {
		return feed.Entry{}, s.scheduleErr
	}
	return s.entry, nil
}

func (s *meetingServiceStub) ListUpcomingMeetings(ctx context.Context, principal application.Principal) ([]feed.Entry, error) {
	if s.feedErr != nil {
		return nil, s.feedErr
	}
	return s.feedEntries, nil
}

func (s *meetingServiceStub) StartInstantMeeting(ctx context.Context) (string, error) {
	if s.instantErr != nil {
		return "", s.instantErr
	}
	return s.instantToken, nil
}

func (s *meetingServiceStub) JoinByCode(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", application.ErrEmptyJoinCode
	}
	return trimmed, nil
}

func newMeetingRouter(service meetingService) http.Handler {
	return NewRouter(RouterConfig{Meetings: NewMeetingHandler(service, nil)})
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestMeetingHandler_Schedule(t *testing.T) {
	t.Run("created with feed entry body", func(t *testing.T) {
		service := &meetingServiceStub{entry: feed.Entry{
			TeamID:   "T1",
			TeamName: "Design",
			Meeting:  feed.Meeting{Name: "kickoff", Time: 500, Token: "room-xyz"},
		}}
		router := newMeetingRouter(service)

		body := `{"team":"T1","name":"kickoff","agenda":"plan","time":500}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader(body)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp feedEntryDTO
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Meeting.Token != "room-xyz" || resp.TeamName != "Design" {
			t.Fatalf("unexpected response %+v", resp)
		}
		if len(service.scheduled) != 1 || service.scheduled[0].Input.TeamID != "T1" {
			t.Fatalf("service received wrong params: %+v", service.scheduled)
		}
	})

	t.Run("no team selected", func(t *testing.T) {
		service := &meetingServiceStub{scheduleErr: application.ErrNoTeamSelected}
		router := newMeetingRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader(`{"name":"x","time":1}`)))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.ErrorCode != "MEETING_NO_TEAM_SELECTED" {
			t.Fatalf("unexpected error code %q", resp.ErrorCode)
		}
	})

	t.Run("issuer unavailable", func(t *testing.T) {
		service := &meetingServiceStub{scheduleErr: application.ErrRoomIssuerUnavailable}
		router := newMeetingRouter(service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader(`{"team":"T1","name":"x","time":1}`)))

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newMeetingRouter(&meetingServiceStub{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader("{not json")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestMeetingHandler_Feed(t *testing.T) {
	service := &meetingServiceStub{feedEntries: []feed.Entry{
		{TeamID: "T1", TeamName: "Design", Meeting: feed.Meeting{Name: "a", Time: 50, Token: "x"}},
		{TeamID: "T1", TeamName: "Design", Meeting: feed.Meeting{Name: "b", Time: 100, Token: "y"}},
	}}
	router := newMeetingRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []feedEntryDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Meeting.Time != 50 || resp[1].Meeting.Time != 100 {
		t.Fatalf("unexpected feed %+v", resp)
	}
}

func TestMeetingHandler_Instant(t *testing.T) {
	t.Run("returns the token", func(t *testing.T) {
		router := newMeetingRouter(&meetingServiceStub{instantToken: "room-now"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/instant", nil))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var resp roomResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Token != "room-now" {
			t.Fatalf("unexpected token %q", resp.Token)
		}
	})

	t.Run("issuer down", func(t *testing.T) {
		router := newMeetingRouter(&meetingServiceStub{instantErr: application.ErrRoomIssuerUnavailable})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/instant", nil))

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}

func TestMeetingHandler_Join(t *testing.T) {
	router := newMeetingRouter(&meetingServiceStub{})

	t.Run("code passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/join", strings.NewReader(`{"code":"abc123"}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp roomResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Token != "abc123" {
			t.Fatalf("expected abc123, got %q", resp.Token)
		}
	})

	t.Run("blank code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings/join", strings.NewReader(`{"code":""}`)))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.ErrorCode != "MEETING_EMPTY_JOIN_CODE" {
			t.Fatalf("unexpected error code %q", resp.ErrorCode)
		}
	})
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newMeetingRouter(&meetingServiceStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/meetings", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("missing Allow header, got %q", allow)
	}
}

type authServiceStub struct {
	registerResult application.User
	registerErr    error

	authResult application.AuthenticateResult
	authErr    error

	revoked   []string
	revokeErr error
}

func (s *authServiceStub) Register(ctx context.Context, params application.RegisterParams) (application.User, error) {
	if s.registerErr != nil {
		return application.User{}, s.registerErr
	}
	return s.registerResult, nil
}

func (s *authServiceStub) Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error) {
	if s.authErr != nil {
		return application.AuthenticateResult{}, s.authErr
	}
	return s.authResult, nil
}

func (s *authServiceStub) RevokeSession(ctx context.Context, token string) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked = append(s.revoked, token)
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues token header and cookie", func(t *testing.T) {
		service := &authServiceStub{authResult: application.AuthenticateResult{
			User:    application.User{ID: "user-1", DisplayName: "Ada"},
			Session: application.Session{Token: "tok-1"},
		}}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(service, nil)})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"pw"}`)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Session-Token") != "tok-1" {
			t.Fatal("missing session token header")
		}
		cookieFound := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "session_token" && cookie.Value == "tok-1" {
				cookieFound = true
			}
		}
		if !cookieFound {
			t.Fatal("session cookie not set")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		service := &authServiceStub{authErr: application.ErrInvalidCredentials}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(service, nil)})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"x@example.com","password":"bad"}`)))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	service := &authServiceStub{}
	router := NewRouter(RouterConfig{Auth: NewAuthHandler(service, nil)})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(service.revoked) != 1 || service.revoked[0] != "tok-1" {
		t.Fatalf("token not revoked: %v", service.revoked)
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service := &authServiceStub{registerResult: application.User{ID: "user-1", DisplayName: "Ada", Status: "Available"}}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(service, nil)})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"display_name":"Ada","email":"ada@example.com","password":"longenough"}`)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var resp userDTO
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.UID != "user-1" || resp.Status != "Available" {
			t.Fatalf("unexpected profile %+v", resp)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		service := &authServiceStub{registerErr: application.ErrAlreadyExists}
		router := NewRouter(RouterConfig{Auth: NewAuthHandler(service, nil)})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"display_name":"Ada","email":"ada@example.com","password":"longenough"}`)))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
