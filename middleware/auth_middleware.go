package middleware

import (
	"net/http"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/services"
	"campus-todo/campustodo/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the bearer token and stores the caller's
// identity in the request context. Revoked tokens are rejected like expired
// ones.
func AuthMiddleware(db *database.Database, authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(db, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("claims", claims)

		c.Next()
	}
}
