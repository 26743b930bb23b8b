package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/pkg/contextkeys"
)

// Auth verifies the bearer token and stores the caller's identity on the
// request. Requests without a valid token are rejected.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "domain": "auth", "message": "missing or invalid token"},
			})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. Listing endpoints use it so the role gate can
// widen results for admins.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set. It must
// run after Auth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := models.UserRole(c.GetString(contextkeys.Role))
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "domain": "auth", "message": "insufficient permissions"},
			})
			return
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserID, claims.UserID)
	c.Set(contextkeys.Role, claims.Role)
	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}
