package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flockreads-backend-go/internal/config"
)

// CORSMiddleware configures Cross-Origin Resource Sharing for the console
// frontend. Only the configured CLIENT_URL origin is allowed; main skips
// this middleware entirely when no client URL is set.
func CORSMiddleware(appConfig *config.Config) gin.HandlerFunc {
	if appConfig == nil || appConfig.ClientURL == "" {
		panic("ClientURL for CORS is not configured")
	}

	return cors.New(cors.Config{
		AllowOrigins: []string{appConfig.ClientURL},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		// "Authorization" is required for bearer-token auth.
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
