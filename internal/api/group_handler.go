package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/core"
	"flockreads-backend-go/internal/middleware"
	"flockreads-backend-go/internal/models"
)

// GroupHandler handles API endpoints for groups and their membership.
type GroupHandler struct {
	membershipService core.MembershipService
	logger            *zap.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(ms core.MembershipService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{membershipService: ms, logger: logger}
}

// mapMembershipErrorToStatus maps errors from core.MembershipService to
// HTTP status codes.
func (h *GroupHandler) mapMembershipErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	switch {
	case errors.Is(err, core.ErrLeaderNotFound),
		errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrGroupNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, core.ErrEmptyGroupName),
		errors.Is(err, core.ErrInvalidRole):
		statusCode = http.StatusBadRequest
	case errors.Is(err, core.ErrWriteConflict):
		statusCode = http.StatusConflict
	default:
		h.logger.Error("membership operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(statusCode, ErrorResponse{Error: err.Error()})
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.membershipService.ListGroups(c.Request.Context())
	if err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup handles GET /groups/:groupId
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.membershipService.GetGroup(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// ListGroupMembers handles GET /groups/:groupId/members
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	members, err := h.membershipService.ListGroupMembers(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	if members == nil {
		members = []*models.User{}
	}
	c.JSON(http.StatusOK, members)
}

// CreateGroup handles POST /groups. When the payload names no leader the
// authenticated caller is promoted, matching the console's create dialog.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Principal not found in context"})
		return
	}

	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	leaderID := req.LeaderID
	if leaderID == "" {
		leaderID = principal.UID
	}

	groupID, err := h.membershipService.CreateGroup(c.Request.Context(), principal, req.Name, leaderID)
	if err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateGroupResponse{ID: groupID})
}

// AddMember handles POST /groups/:groupId/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Principal not found in context"})
		return
	}

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.membershipService.AddMember(c.Request.Context(), principal, c.Param("groupId"), req.Email); err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateMemberRole handles PUT /users/:userId/role
func (h *GroupHandler) UpdateMemberRole(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Principal not found in context"})
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.membershipService.UpdateMemberRole(c.Request.Context(), principal, c.Param("userId"), req.Role); err != nil {
		h.mapMembershipErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
