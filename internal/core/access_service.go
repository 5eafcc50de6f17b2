package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/models"
)

// Denial reasons for console access. Each one is terminal for the session:
// the API layer revokes the principal's refresh tokens before responding,
// so a denied principal does not retain a live credential.
var (
	ErrProfileNotFound       = errors.New("access denied: user profile not found")
	ErrNotLinkedToChurch     = errors.New("access denied: admin account must be linked to a church")
	ErrInsufficientPrivilege = errors.New("access denied: administrator privileges required")
)

// accessService implements the AccessService interface.
type accessService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
}

// NewAccessService creates a new AccessService instance.
func NewAccessService(userRepo db.UserRepository, logger *zap.Logger) AccessService {
	return &accessService{userRepo: userRepo, logger: logger}
}

// Authorize checks the principal's stored profile against the console role
// policy. Rules are ordered, first match wins:
//
//  1. no profile document        -> ErrProfileNotFound
//  2. role super-admin           -> authorized (churchId may be empty)
//  3. role admin with churchId   -> authorized
//     role admin without         -> ErrNotLinkedToChurch
//  4. any other role             -> ErrInsufficientPrivilege
//
// The check is a pure read; it never writes to the store. Store transport
// failures are passed through wrapped and are distinguishable from
// denials via errors.Is.
func (s *accessService) Authorize(ctx context.Context, principal models.Principal) (*AccessDecision, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("console access denied: no profile",
				zap.String("uid", principal.UID),
				zap.String("email", principal.Email))
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile for '%s': %w", principal.UID, err)
	}

	switch user.Role {
	case models.RoleSuperAdmin:
		return &AccessDecision{Role: user.Role, ChurchID: user.ChurchID}, nil
	case models.RoleAdmin:
		if user.ChurchID == "" {
			s.logger.Warn("console access denied: admin without church",
				zap.String("uid", principal.UID))
			return nil, ErrNotLinkedToChurch
		}
		return &AccessDecision{Role: user.Role, ChurchID: user.ChurchID}, nil
	default:
		s.logger.Warn("console access denied: insufficient role",
			zap.String("uid", principal.UID),
			zap.String("role", user.Role))
		return nil, ErrInsufficientPrivilege
	}
}
