package db

import (
	"context"

	"flockreads-backend-go/internal/models"
)

// UserRepository defines the interface for user profile storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// GetByEmail resolves a user by exact email match, as stored.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByGroupID(ctx context.Context, groupID string) ([]*models.User, error)
	// SetRole writes role and updatedAt on an existing user document.
	SetRole(ctx context.Context, userID, role string) error
	Count(ctx context.Context) (int64, error)
}

// GroupRepository defines the interface for group storage operations,
// including the two multi-document writes the membership directory needs.
type GroupRepository interface {
	GetByID(ctx context.Context, groupID string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Count(ctx context.Context) (int64, error)
	// CreateWithLeader atomically creates a group and promotes its leader:
	// the new group document (memberCount 1) and the leader's
	// groupId/role update commit together or not at all.
	CreateWithLeader(ctx context.Context, name, leaderID string) (string, error)
	// AttachMember atomically sets the user's groupId and increments the
	// group's memberCount. A missing group still attaches the user and
	// leaves the counter untouched.
	AttachMember(ctx context.Context, groupID, userID string) error
}

// GoalRepository defines the interface for group reading-goal storage.
type GoalRepository interface {
	List(ctx context.Context) ([]*models.GroupGoal, error)
	// SumTotalCleared returns the store-computed sum of total_cleared_count
	// across every goal document.
	SumTotalCleared(ctx context.Context) (int64, error)
}
