package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/meeting-coordinator/internal/persistence"
)

func seedUser(t *testing.T, repo *UserRepository, id, email string) {
	t.Helper()
	err := repo.CreateUser(context.Background(), persistence.User{
		ID:          id,
		Email:       email,
		DisplayName: "Test User",
		Status:      "Available",
	}, "hash")
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "user-1", "one@example.com")

	user, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Email != "one@example.com" {
		t.Fatalf("unexpected email %q", user.Email)
	}
	if user.Status != "Available" {
		t.Fatalf("unexpected status %q", user.Status)
	}
	if len(user.Teams) != 0 {
		t.Fatalf("expected no memberships, got %v", user.Teams)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "user-1", "dup@example.com")

	err := repo.CreateUser(context.Background(), persistence.User{
		ID:          "user-2",
		Email:       "dup@example.com",
		DisplayName: "Other",
		Status:      "Available",
	}, "hash")
	if !errors.Is(err, persistence.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserRepository_Memberships(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	seedUser(t, users, "user-1", "one@example.com")
	for _, team := range []persistence.Team{
		{ID: "team-a", Name: "Alpha"},
		{ID: "team-b", Name: "Beta"},
	} {
		if err := teams.CreateTeam(ctx, team); err != nil {
			t.Fatalf("create team: %v", err)
		}
	}

	if err := users.AddTeam(ctx, "user-1", "team-a"); err != nil {
		t.Fatalf("add team: %v", err)
	}
	if err := users.AddTeam(ctx, "user-1", "team-b"); err != nil {
		t.Fatalf("add team: %v", err)
	}
	// repeated joins stay idempotent
	if err := users.AddTeam(ctx, "user-1", "team-a"); err != nil {
		t.Fatalf("re-add team: %v", err)
	}

	user, err := users.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(user.Teams) != 2 || user.Teams[0] != "team-a" || user.Teams[1] != "team-b" {
		t.Fatalf("unexpected memberships %v", user.Teams)
	}

	if err := users.RemoveTeam(ctx, "user-1", "team-a"); err != nil {
		t.Fatalf("remove team: %v", err)
	}
	user, err = users.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(user.Teams) != 1 || user.Teams[0] != "team-b" {
		t.Fatalf("unexpected memberships after leave %v", user.Teams)
	}
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "user-1", "one@example.com")

	if err := repo.UpdateStatus(ctx, "user-1", "Busy"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	user, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Status != "Busy" {
		t.Fatalf("expected status Busy, got %q", user.Status)
	}

	if err := repo.UpdateStatus(ctx, "missing", "Busy"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestUserRepository_Credentials(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "user-1", "one@example.com")

	creds, err := repo.GetUserCredentialsByEmail(ctx, "one@example.com")
	if err != nil {
		t.Fatalf("get credentials: %v", err)
	}
	if creds.PasswordHash != "hash" {
		t.Fatalf("unexpected password hash %q", creds.PasswordHash)
	}
	if creds.User.ID != "user-1" {
		t.Fatalf("unexpected user %q", creds.User.ID)
	}

	if _, err := repo.GetUserCredentialsByEmail(ctx, "nobody@example.com"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseTimestamps(t *testing.T) {
	created, updated, err := parseTimestamps("2024-06-03T10:00:00Z", "2024-06-03T11:00:00Z")
	if err != nil {
		t.Fatalf("parse valid timestamps: %v", err)
	}
	if created.After(updated) {
		t.Fatalf("unexpected ordering: %v > %v", created, updated)
	}

	if _, _, err := parseTimestamps("garbage", "2024-06-03T11:00:00Z"); err == nil {
		t.Fatal("expected error for corrupt created_at")
	}
	if _, _, err := parseTimestamps("2024-06-03T10:00:00Z", "garbage"); err == nil {
		t.Fatal("expected error for corrupt updated_at")
	}
}

func TestUserRepository_CorruptTimestampSurfaces(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "user-1", "one@example.com")

	if _, err := db.db.ExecContext(ctx, `UPDATE users SET created_at = 'not-a-time' WHERE id = 'user-1'`); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	if _, err := repo.GetUser(ctx, "user-1"); err == nil {
		t.Fatal("expected error for corrupt stored timestamp")
	}
}
