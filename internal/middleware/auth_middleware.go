package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flockreads-backend-go/internal/models"
)

// PrincipalKey is the gin context key under which VerifyToken stores the
// authenticated models.Principal.
const PrincipalKey = "principal"

// ErrorResponse is a local definition for standardized error messages.
// It mirrors the one in internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides gin middleware for Firebase ID token
// authentication. It establishes identity only; the role gate runs in the
// access service, once per sign-in.
type AuthMiddleware struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(authClient *auth.Client, logger *zap.Logger) *AuthMiddleware {
	if authClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{authClient: authClient, logger: logger}
}

// VerifyToken verifies the bearer token from the Authorization header and
// stores the resolved principal in the request context for handlers to
// pass explicitly into service calls.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.authClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("ID token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		principal := models.Principal{UID: token.UID}
		if email, ok := token.Claims["email"].(string); ok {
			principal.Email = email
		}
		c.Set(PrincipalKey, principal)

		c.Next()
	}
}

// PrincipalFromContext returns the principal stored by VerifyToken.
func PrincipalFromContext(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}
