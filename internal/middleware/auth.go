package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/token"
)

// AdminAuth guards routes that mutate complaint state reserved for
// municipal staff (status cycling, deletion).
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		claims, err := token.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		if !claims.Admin {
			response.Forbidden(c, "Admin privileges required")
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Set("isAdmin", true)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present but never
// rejects the request. Public routes use it so staff activity (comments) is
// attributed to them.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := token.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Set("isAdmin", claims.Admin)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. Both
// "Bearer <token>" (case-insensitive) and a raw token are accepted.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	fields := strings.Fields(authHeader)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	return authHeader
}
