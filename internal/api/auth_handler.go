package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/core"
	"flockreads-backend-go/internal/middleware"
)

// TokenRevoker invalidates a user's refresh tokens, forcing sign-out on
// every device. Satisfied by *auth.Client from the Firebase Admin SDK.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// AuthHandler handles the console session gate.
type AuthHandler struct {
	accessService core.AccessService
	revoker       TokenRevoker
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accessService core.AccessService, revoker TokenRevoker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accessService: accessService, revoker: revoker, logger: logger}
}

// CreateSession handles POST /auth/session. The bearer token has already
// been verified by the auth middleware; this runs the role gate. On every
// denial the principal's refresh tokens are revoked before the response
// goes out, so a denied principal does not keep a live credential.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Principal not found in context"})
		return
	}

	decision, err := h.accessService.Authorize(c.Request.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrProfileNotFound),
			errors.Is(err, core.ErrNotLinkedToChurch),
			errors.Is(err, core.ErrInsufficientPrivilege):
			h.forceSignOut(c.Request.Context(), principal.UID)
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			h.logger.Error("authorization check failed", zap.String("uid", principal.UID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		}
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authorized: true,
		Role:       decision.Role,
		ChurchID:   decision.ChurchID,
	})
}

func (h *AuthHandler) forceSignOut(ctx context.Context, uid string) {
	if err := h.revoker.RevokeRefreshTokens(ctx, uid); err != nil {
		// The denial response still goes out; the stale credential expires
		// on its own within the ID token lifetime.
		h.logger.Error("failed to revoke refresh tokens", zap.String("uid", uid), zap.Error(err))
	}
}
