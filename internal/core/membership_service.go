package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

// Custom errors for the MembershipService.
var (
	ErrLeaderNotFound = errors.New("leader not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrEmptyGroupName = errors.New("group name cannot be empty")
	ErrInvalidRole    = errors.New("invalid role")
	ErrWriteConflict  = errors.New("concurrent write conflict, please retry")
)

// membershipService implements the MembershipService interface.
type membershipService struct {
	userRepo  db.UserRepository
	groupRepo db.GroupRepository
	logger    *zap.Logger
}

// NewMembershipService creates a new MembershipService instance.
func NewMembershipService(userRepo db.UserRepository, groupRepo db.GroupRepository, logger *zap.Logger) MembershipService {
	return &membershipService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// CreateGroup creates a group with the given user as leader. The group
// document and the leader's groupId/role change commit atomically; when
// the leader does not exist nothing is written and ErrLeaderNotFound is
// returned. Retry exhaustion against concurrent writers surfaces as
// ErrWriteConflict.
func (s *membershipService) CreateGroup(ctx context.Context, actor models.Principal, name, leaderID string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyGroupName
	}
	if leaderID == "" {
		return "", fmt.Errorf("%w: empty leader id", ErrLeaderNotFound)
	}

	groupID, err := s.groupRepo.CreateWithLeader(ctx, name, leaderID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return "", fmt.Errorf("%w: id '%s'", ErrLeaderNotFound, leaderID)
		case errors.Is(err, db.ErrConflict):
			return "", fmt.Errorf("create group '%s': %w", name, ErrWriteConflict)
		}
		return "", fmt.Errorf("failed to create group '%s': %w", name, err)
	}

	s.logger.Info("group created",
		zap.String("groupId", groupID),
		zap.String("name", name),
		zap.String("leaderId", leaderID),
		zap.String("actor", actor.UID))
	return groupID, nil
}

// AddMember looks the user up by exact email and attaches them to the
// group, incrementing its memberCount in the same transaction. A user
// moving in from another group keeps that group's count unchanged; only
// the target group's counter moves.
func (s *membershipService) AddMember(ctx context.Context, actor models.Principal, groupID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: empty email", ErrUserNotFound)
	}
	if groupID == "" {
		return fmt.Errorf("%w: empty group id", ErrGroupNotFound)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: no user with email '%s'", ErrUserNotFound, email)
		}
		return fmt.Errorf("failed to look up user by email '%s': %w", email, err)
	}

	if err := s.groupRepo.AttachMember(ctx, groupID, user.ID); err != nil {
		if errors.Is(err, db.ErrConflict) {
			return fmt.Errorf("add member to group '%s': %w", groupID, ErrWriteConflict)
		}
		return fmt.Errorf("failed to attach user '%s' to group '%s': %w", user.ID, groupID, err)
	}

	s.logger.Info("member added to group",
		zap.String("groupId", groupID),
		zap.String("userId", user.ID),
		zap.String("actor", actor.UID))
	return nil
}

// UpdateMemberRole writes a new role on the target user. Only member,
// leader and admin are accepted; anything else is rejected before touching
// the store. Group documents are not affected.
func (s *membershipService) UpdateMemberRole(ctx context.Context, actor models.Principal, userID, role string) error {
	if !slices.Contains(models.AssignableRoles, role) {
		return fmt.Errorf("%w: '%s'", ErrInvalidRole, role)
	}

	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to update role for user '%s': %w", userID, err)
	}

	s.logger.Info("member role updated",
		zap.String("userId", userID),
		zap.String("role", role),
		zap.String("actor", actor.UID))
	return nil
}

// ListGroups returns every group.
func (s *membershipService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns a single group by ID.
func (s *membershipService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrGroupNotFound, groupID)
		}
		return nil, fmt.Errorf("failed to get group '%s': %w", groupID, err)
	}
	return group, nil
}

// ListGroupMembers returns the users currently attached to the group.
func (s *membershipService) ListGroupMembers(ctx context.Context, groupID string) ([]*models.User, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	members, err := s.userRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group '%s': %w", groupID, err)
	}
	return members, nil
}
