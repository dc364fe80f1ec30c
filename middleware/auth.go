package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentrate/services"
)

// AuthCookieName is the httpOnly cookie carrying the JWT.
const AuthCookieName = "token"

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid token and stores the caller's
// user id under "currentUserID".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := services.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("currentUserID", claims.UserID)
		c.Next()
	}
}

// OptionalAuth records the caller's identity when a valid token is present
// but lets anonymous requests through untouched.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := services.ParseToken(tokenString); err == nil {
				c.Set("currentUserID", claims.UserID)
			}
		}
		c.Next()
	}
}
