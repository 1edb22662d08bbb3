package handlers

import (
	"net/http"
	"strings"

	"eventeasy/internal/models"
	"eventeasy/internal/redis"
	"eventeasy/internal/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// RequireAuth resolves the bearer token to a user account and injects it
// into the request context. Handlers read the caller via currentUser and
// never from ambient state.
func RequireAuth(sessions *redis.Client, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		session, err := sessions.GetSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		user, err := users.GetUserByID(session.UserID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.UserAccount {
	if value, ok := c.Get(currentUserKey); ok {
		if user, ok := value.(*models.UserAccount); ok {
			return user
		}
	}
	return nil
}
