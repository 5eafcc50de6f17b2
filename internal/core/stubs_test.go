package core

import (
	"context"
	"errors"

	"flockreads-backend-go/internal/models"
)

// Stub repositories backed by function fields, in the style of the rest of
// the test suite: a nil field means the test does not expect that call.

var errUnexpectedCall = errors.New("unexpected repository call")

type stubUserRepo struct {
	getByID       func(ctx context.Context, userID string) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	list          func(ctx context.Context) ([]*models.User, error)
	listByGroupID func(ctx context.Context, groupID string) ([]*models.User, error)
	setRole       func(ctx context.Context, userID, role string) error
	count         func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if s.getByID == nil {
		return nil, errUnexpectedCall
	}
	return s.getByID(ctx, userID)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		return nil, errUnexpectedCall
	}
	return s.getByEmail(ctx, email)
}

func (s *stubUserRepo) List(ctx context.Context) ([]*models.User, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(ctx)
}

func (s *stubUserRepo) ListByGroupID(ctx context.Context, groupID string) ([]*models.User, error) {
	if s.listByGroupID == nil {
		return nil, errUnexpectedCall
	}
	return s.listByGroupID(ctx, groupID)
}

func (s *stubUserRepo) SetRole(ctx context.Context, userID, role string) error {
	if s.setRole == nil {
		return errUnexpectedCall
	}
	return s.setRole(ctx, userID, role)
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	if s.count == nil {
		return 0, errUnexpectedCall
	}
	return s.count(ctx)
}

type stubGroupRepo struct {
	getByID          func(ctx context.Context, groupID string) (*models.Group, error)
	list             func(ctx context.Context) ([]*models.Group, error)
	count            func(ctx context.Context) (int64, error)
	createWithLeader func(ctx context.Context, name, leaderID string) (string, error)
	attachMember     func(ctx context.Context, groupID, userID string) error
}

func (s *stubGroupRepo) GetByID(ctx context.Context, groupID string) (*models.Group, error) {
	if s.getByID == nil {
		return nil, errUnexpectedCall
	}
	return s.getByID(ctx, groupID)
}

func (s *stubGroupRepo) List(ctx context.Context) ([]*models.Group, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(ctx)
}

func (s *stubGroupRepo) Count(ctx context.Context) (int64, error) {
	if s.count == nil {
		return 0, errUnexpectedCall
	}
	return s.count(ctx)
}

func (s *stubGroupRepo) CreateWithLeader(ctx context.Context, name, leaderID string) (string, error) {
	if s.createWithLeader == nil {
		return "", errUnexpectedCall
	}
	return s.createWithLeader(ctx, name, leaderID)
}

func (s *stubGroupRepo) AttachMember(ctx context.Context, groupID, userID string) error {
	if s.attachMember == nil {
		return errUnexpectedCall
	}
	return s.attachMember(ctx, groupID, userID)
}

type stubGoalRepo struct {
	list            func(ctx context.Context) ([]*models.GroupGoal, error)
	sumTotalCleared func(ctx context.Context) (int64, error)
}

func (s *stubGoalRepo) List(ctx context.Context) ([]*models.GroupGoal, error) {
	if s.list == nil {
		return nil, errUnexpectedCall
	}
	return s.list(ctx)
}

func (s *stubGoalRepo) SumTotalCleared(ctx context.Context) (int64, error) {
	if s.sumTotalCleared == nil {
		return 0, errUnexpectedCall
	}
	return s.sumTotalCleared(ctx)
}
