package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/models"
)

func TestListGoalsComputesProgress(t *testing.T) {
	goalRepo := &stubGoalRepo{
		list: func(context.Context) ([]*models.GroupGoal, error) {
			return []*models.GroupGoal{
				{ID: "goal-1", GroupID: "g1", TotalClearedCount: 130, TotalChapters: 260},
				{ID: "goal-2", GroupID: "g1", TotalClearedCount: 0, TotalChapters: 260},
				{ID: "goal-3", TotalClearedCount: 10, TotalChapters: 260},
			}, nil
		},
	}
	groupCalls := 0
	groupRepo := &stubGroupRepo{
		getByID: func(_ context.Context, groupID string) (*models.Group, error) {
			groupCalls++
			return &models.Group{ID: groupID, Name: "Vine"}, nil
		},
	}
	svc := NewGoalService(goalRepo, groupRepo, zap.NewNop())

	goals, err := svc.ListGoals(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 3)

	assert.Equal(t, 50, goals[0].Progress)
	assert.Equal(t, 0, goals[1].Progress)
	assert.Equal(t, 4, goals[2].Progress) // round(10/260*100)

	assert.Equal(t, "Vine", goals[0].GroupName)
	assert.Equal(t, "Unknown Group", goals[2].GroupName)
	assert.Equal(t, 1, groupCalls, "group name resolved once per distinct group")
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, progressPercent(10, 0))
	assert.Equal(t, 0, progressPercent(0, 260))
	assert.Equal(t, 33, progressPercent(1, 3))
	assert.Equal(t, 67, progressPercent(2, 3))
	assert.Equal(t, 100, progressPercent(260, 260))
}
