package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flockreads-backend-go/internal/core"
)

// DashboardHandler handles the read-only dashboard endpoints. The stats
// service never errors past its boundary, so these handlers always return
// 200 with whatever (possibly degraded) data is available.
type DashboardHandler struct {
	statsService core.StatsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ss core.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: ss}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.DashboardStats(c.Request.Context()))
}

// GetWeeklyReading handles GET /dashboard/weekly-reading
func (h *DashboardHandler) GetWeeklyReading(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.WeeklyReadingStats(c.Request.Context()))
}

// GetTopGroups handles GET /dashboard/top-groups?limit=
func (h *DashboardHandler) GetTopGroups(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, h.statsService.TopGroupsByMembership(c.Request.Context(), limit))
}
