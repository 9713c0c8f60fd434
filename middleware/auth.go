package middleware

import (
	"net/http"
	"strings"

	"inkwell/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMemberMiddleware validates the bearer token and stores the member ID
// in the request context. Token issuance lives outside this service.
func JWTAuthMemberMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		memberID, err := utils.ExtractMemberIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set("memberID", memberID)
		c.Next()
	}
}
