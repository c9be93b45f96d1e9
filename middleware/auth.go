package middleware

import (
	"net/http"
	"strings"

	"shelfspace/models"
	"shelfspace/utils"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// AuthMiddleware resolves the bearer token into a typed actor and stores
// it on the request context. Every protected route goes through here so
// handlers never parse tokens themselves.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actor, err := utils.ResolveActor(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// AdminAuthMiddleware additionally requires the admin role. Must run after
// AuthMiddleware.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetActor retrieves the resolved actor from the request context.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
