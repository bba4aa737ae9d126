package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// UserDirectory exposes user lookup for membership resolution.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (persistence.User, error)
}

// MembershipResolver answers which teams a user belongs to. It reads the
// user record on every call; results are never cached across identities.
type MembershipResolver struct {
	users UserDirectory
}

// NewMembershipResolver wires the resolver to a user directory.
func NewMembershipResolver(users UserDirectory) *MembershipResolver {
	return &MembershipResolver{users: users}
}

// ResolveMemberTeams returns the team ids the user is a member of. An absent
// user record yields an empty set, not an error.
func (r *MembershipResolver) ResolveMemberTeams(ctx context.Context, userID string) ([]string, error) {
	if r == nil || r.users == nil {
		return nil, fmt.Errorf("user directory not configured")
	}

	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	teams := make([]string, len(user.Teams))
	copy(teams, user.Teams)
	return teams, nil
}
