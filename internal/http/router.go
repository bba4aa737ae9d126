package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Teams      *TeamHandler
	Meetings   *MeetingHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Auth != nil {
		mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Register(w, r)
		})
		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Login(w, r)
		})
		mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Logout(w, r)
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/users/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}

			if id, ok := strings.CutSuffix(rest, "/status"); ok && id != "" {
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				r = r.WithContext(ContextWithUserID(r.Context(), id))
				cfg.Users.UpdateStatus(w, r)
				return
			}

			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithUserID(r.Context(), rest))
			cfg.Users.Get(w, r)
		})
	}

	if cfg.Teams != nil {
		mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Teams.List(w, r)
			case http.MethodPost:
				cfg.Teams.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/teams/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/teams/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}

			switch {
			case strings.HasSuffix(rest, "/join"):
				id := strings.TrimSuffix(rest, "/join")
				r = r.WithContext(ContextWithTeamID(r.Context(), id))
				cfg.Teams.Join(w, r)
			case strings.HasSuffix(rest, "/leave"):
				id := strings.TrimSuffix(rest, "/leave")
				r = r.WithContext(ContextWithTeamID(r.Context(), id))
				cfg.Teams.Leave(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Meetings != nil {
		mux.HandleFunc("/meetings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Meetings.Feed(w, r)
			case http.MethodPost:
				cfg.Meetings.Schedule(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/meetings/instant", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Meetings.Instant(w, r)
		})
		mux.HandleFunc("/meetings/join", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Meetings.Join(w, r)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
