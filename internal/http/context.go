package http

import (
	"context"

	"github.com/example/meeting-coordinator/internal/application"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	teamIDContextKey    contextKey = "team_id"
	userIDContextKey    contextKey = "user_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithTeamID injects the team identifier resolved from the request path.
func ContextWithTeamID(ctx context.Context, teamID string) context.Context {
	return context.WithValue(ctx, teamIDContextKey, teamID)
}

// TeamIDFromContext extracts a team identifier previously associated with the context.
func TeamIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(teamIDContextKey).(string)
	return id, ok
}

// ContextWithUserID injects the user identifier resolved from the request path.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts a user identifier previously associated with the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}
