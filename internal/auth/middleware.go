package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireUser resolves the bearer token to a session and stores the user's
// identity in the gin context for downstream handlers. The token may also
// arrive as a query parameter because iframe and download navigations
// cannot set headers.
func RequireUser(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		sess, err := m.SessionFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("user_id", sess.User.ID)
		c.Set("user_email", sess.User.Email)
		c.Set("access_token", token)
		c.Next()
	}
}

// BearerToken extracts the access token from the Authorization header, or
// failing that from the token query parameter. Empty when neither is set.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.Query("token"))
}
