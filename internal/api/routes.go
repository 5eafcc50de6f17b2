package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/core"
	"flockreads-backend-go/internal/db"
	"flockreads-backend-go/internal/middleware"
)

// SetupRoutes configures all application routes with their handlers and
// middleware. Global middleware (request id, logging, recovery, CORS) is
// applied to the router in main before this is called.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	clients *db.Clients,
	accessService core.AccessService,
	membershipService core.MembershipService,
	statsService core.StatsService,
	userService core.UserService,
	goalService core.GoalService,
) {
	authMW := middleware.NewAuthMiddleware(clients.Auth, logger)

	authHandler := NewAuthHandler(accessService, clients.Auth, logger)
	groupHandler := NewGroupHandler(membershipService, logger)
	dashboardHandler := NewDashboardHandler(statsService)
	userHandler := NewUserHandler(userService, logger)
	goalHandler := NewGoalHandler(goalService, logger)

	apiV1 := router.Group("/api/v1", authMW.VerifyToken())
	{
		apiV1.POST("/auth/session", authHandler.CreateSession)

		dashboard := apiV1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/weekly-reading", dashboardHandler.GetWeeklyReading)
			dashboard.GET("/top-groups", dashboardHandler.GetTopGroups)
		}

		groups := apiV1.Group("/groups")
		{
			groups.GET("", groupHandler.ListGroups)
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("/:groupId", groupHandler.GetGroup)
			groups.GET("/:groupId/members", groupHandler.ListGroupMembers)
			groups.POST("/:groupId/members", groupHandler.AddMember)
		}

		users := apiV1.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/:userId/role", groupHandler.UpdateMemberRole)
		}

		apiV1.GET("/goals", goalHandler.ListGoals)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health.")
}
