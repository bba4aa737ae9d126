package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/meeting-coordinator/internal/application"
	"github.com/example/meeting-coordinator/internal/config"
	httptransport "github.com/example/meeting-coordinator/internal/http"
	"github.com/example/meeting-coordinator/internal/persistence/sqlite"
	"github.com/example/meeting-coordinator/internal/roomissuer"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local development keeps overrides in a .env file; absence is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	userRepo := sqlite.NewUserRepository(db)
	teamRepo := sqlite.NewTeamRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	issuer := roomissuer.NewClient(cfg.IssuerURL, &http.Client{Timeout: cfg.IssuerTimeout}, logger)

	authService := application.NewAuthService(userRepo, sessionRepo, idGenerator, tokenGenerator, now, cfg.SessionTTL, logger)
	userService := application.NewUserService(userRepo, logger)
	teamService := application.NewTeamService(teamRepo, userRepo, idGenerator, now, logger)
	membership := application.NewMembershipResolver(userRepo)
	meetingService := application.NewMeetingService(teamRepo, membership, issuer, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     httptransport.NewAuthHandler(authService, logger),
		Users:    httptransport.NewUserHandler(userService, logger),
		Teams:    httptransport.NewTeamHandler(teamService, logger),
		Meetings: httptransport.NewMeetingHandler(meetingService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("coordinator API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func isPublicPath(path string) bool {
	return path == "/register" || path == "/login"
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	// crypto/rand.Read never returns an error; a broken entropy source must
	// not degrade into predictable tokens.
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
