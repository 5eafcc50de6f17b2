package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/core"
	"flockreads-backend-go/internal/models"
)

// GoalHandler handles the reading-goal endpoints.
type GoalHandler struct {
	goalService core.GoalService
	logger      *zap.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(gs core.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{goalService: gs, logger: logger}
}

// ListGoals handles GET /goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list goals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	if goals == nil {
		goals = []*models.GroupGoal{}
	}
	c.JSON(http.StatusOK, goals)
}
