package middleware

import (
	"net/http"
	"strings"

	"aptbillmanager/internal/repositories"
	"aptbillmanager/internal/services"

	"github.com/gin-gonic/gin"
)

// MemberContextKey is where the authenticated member lands in gin's context.
const MemberContextKey = "current_member"

// AuthMiddleware validates the bearer token and resolves its subject to an
// active committee member. Anything less is a 401.
func AuthMiddleware(auth services.AuthService, members repositories.MemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		email, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		member, err := members.GetByEmail(c.Request.Context(), email)
		if err != nil || member == nil || !member.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		c.Set(MemberContextKey, member)
		c.Next()
	}
}
