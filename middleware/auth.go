package middleware

import (
	"net/http"
	"strings"

	"admitdesk/utils"

	"github.com/gin-gonic/gin"
)

// ContextEmployeeID is the gin context key holding the authenticated employee id.
const ContextEmployeeID = "employeeID"

// JWTAuthEmployeeMiddleware accepts a bearer token, or a "token" query
// parameter for EventSource clients that cannot set headers.
func JWTAuthEmployeeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		employeeID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextEmployeeID, employeeID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
