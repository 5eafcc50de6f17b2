package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

func TestListUsersResolvesGroupNamesOncePerGroup(t *testing.T) {
	userRepo := &stubUserRepo{
		list: func(context.Context) ([]*models.User, error) {
			return []*models.User{
				{ID: "u1", GroupID: "g1"},
				{ID: "u2", GroupID: "g1"},
				{ID: "u3"},
				{ID: "u4", GroupID: "g2"},
			}, nil
		},
	}
	groupFetches := map[string]int{}
	groupRepo := &stubGroupRepo{
		getByID: func(_ context.Context, groupID string) (*models.Group, error) {
			groupFetches[groupID]++
			return &models.Group{ID: groupID, Name: "Group " + groupID}, nil
		},
	}
	svc := NewUserService(userRepo, groupRepo, zap.NewNop())

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 4)

	assert.Equal(t, "Group g1", users[0].GroupName)
	assert.Equal(t, "Group g1", users[1].GroupName)
	assert.Equal(t, "No Group", users[2].GroupName)
	assert.Equal(t, "Group g2", users[3].GroupName)

	// The name cache lives for one call: each distinct group hits the
	// store exactly once.
	assert.Equal(t, map[string]int{"g1": 1, "g2": 1}, groupFetches)
}

func TestListUsersDanglingGroupReference(t *testing.T) {
	userRepo := &stubUserRepo{
		list: func(context.Context) ([]*models.User, error) {
			return []*models.User{{ID: "u1", GroupID: "gone"}}, nil
		},
	}
	groupRepo := &stubGroupRepo{
		getByID: func(context.Context, string) (*models.Group, error) {
			return nil, fmt.Errorf("missing: %w", db.ErrNotFound)
		},
	}
	svc := NewUserService(userRepo, groupRepo, zap.NewNop())

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No Group", users[0].GroupName)
}
