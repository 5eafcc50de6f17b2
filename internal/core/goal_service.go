package core

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

// goalService implements the GoalService interface.
type goalService struct {
	goalRepo  db.GoalRepository
	groupRepo db.GroupRepository
	logger    *zap.Logger
}

// NewGoalService creates a new GoalService instance.
func NewGoalService(goalRepo db.GoalRepository, groupRepo db.GroupRepository, logger *zap.Logger) GoalService {
	return &goalService{
		goalRepo:  goalRepo,
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// ListGoals returns every reading goal with its owning group's name and a
// computed progress percentage. Group names are cached for the duration of
// this call only.
func (s *goalService) ListGoals(ctx context.Context) ([]*models.GroupGoal, error) {
	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	groupNames := make(map[string]string)
	for _, goal := range goals {
		goal.GroupName = s.resolveGroupName(ctx, goal.GroupID, groupNames)
		goal.Progress = progressPercent(goal.TotalClearedCount, goal.TotalChapters)
	}
	return goals, nil
}

func (s *goalService) resolveGroupName(ctx context.Context, groupID string, cache map[string]string) string {
	if groupID == "" {
		return "Unknown Group"
	}
	if name, ok := cache[groupID]; ok {
		return name
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("failed to resolve group name for goal", zap.String("groupId", groupID), zap.Error(err))
		}
		cache[groupID] = "Unknown Group"
		return "Unknown Group"
	}

	cache[groupID] = group.Name
	return group.Name
}

func progressPercent(cleared, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(cleared) / float64(total) * 100))
}
