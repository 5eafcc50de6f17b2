package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo  db.UserRepository
	groupRepo db.GroupRepository
	logger    *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, groupRepo db.GroupRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// ListUsers returns the full member directory with each user's group name
// resolved. Group names are cached per call only, so a rename shows up on
// the next request instead of being served stale indefinitely.
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	groupNames := make(map[string]string)
	for _, user := range users {
		user.GroupName = s.resolveGroupName(ctx, user.GroupID, groupNames)
	}
	return users, nil
}

func (s *userService) resolveGroupName(ctx context.Context, groupID string, cache map[string]string) string {
	if groupID == "" {
		return "No Group"
	}
	if name, ok := cache[groupID]; ok {
		return name
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("failed to resolve group name", zap.String("groupId", groupID), zap.Error(err))
		}
		// A user pointing at a dangling group still renders.
		cache[groupID] = "No Group"
		return "No Group"
	}

	cache[groupID] = group.Name
	return group.Name
}
