package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

func TestAuthorizeRolePolicy(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{
			name: "super-admin without church is authorized",
			user: &models.User{ID: "u1", Role: models.RoleSuperAdmin},
		},
		{
			name: "admin linked to a church is authorized",
			user: &models.User{ID: "u1", Role: models.RoleAdmin, ChurchID: "c1"},
		},
		{
			name:    "admin without church is denied",
			user:    &models.User{ID: "u1", Role: models.RoleAdmin},
			wantErr: ErrNotLinkedToChurch,
		},
		{
			name:    "member is denied",
			user:    &models.User{ID: "u1", Role: models.RoleMember},
			wantErr: ErrInsufficientPrivilege,
		},
		{
			name:    "leader is denied",
			user:    &models.User{ID: "u1", Role: models.RoleLeader, ChurchID: "c1"},
			wantErr: ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubUserRepo{
				getByID: func(_ context.Context, userID string) (*models.User, error) {
					assert.Equal(t, "u1", userID)
					return tt.user, nil
				},
			}
			svc := NewAccessService(repo, zap.NewNop())

			decision, err := svc.Authorize(context.Background(), models.Principal{UID: "u1"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, decision)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.Role, decision.Role)
			assert.Equal(t, tt.user.ChurchID, decision.ChurchID)
		})
	}
}

func TestAuthorizeMissingProfile(t *testing.T) {
	repo := &stubUserRepo{
		getByID: func(context.Context, string) (*models.User, error) {
			return nil, fmt.Errorf("user not found: %w", db.ErrNotFound)
		},
	}
	svc := NewAccessService(repo, zap.NewNop())

	_, err := svc.Authorize(context.Background(), models.Principal{UID: "ghost"})
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAuthorizeStoreFailureIsNotADenial(t *testing.T) {
	storeErr := errors.New("store unavailable")
	repo := &stubUserRepo{
		getByID: func(context.Context, string) (*models.User, error) {
			return nil, storeErr
		},
	}
	svc := NewAccessService(repo, zap.NewNop())

	_, err := svc.Authorize(context.Background(), models.Principal{UID: "u1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
	assert.NotErrorIs(t, err, ErrInsufficientPrivilege)
	assert.NotErrorIs(t, err, ErrNotLinkedToChurch)
}
