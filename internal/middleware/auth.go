package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/auth"
)

// profileIDKey is the gin context key for the authenticated profile id.
const profileIDKey = "profile_id"

// ProfileID extracts the acting profile's id from the request context.
// Returns empty string if the request was not authenticated.
func ProfileID(c *gin.Context) string {
	id, _ := c.Value(profileIDKey).(string)
	return id
}

// RequireAuth returns middleware that validates the Bearer token and
// stores the acting profile id in the request context. Handlers read it
// back with ProfileID; no global current-user state exists.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(profileIDKey, claims.ProfileID)
		c.Next()
	}
}
