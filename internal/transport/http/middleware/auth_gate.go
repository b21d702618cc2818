package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkravets/accounts/internal/token"
)

const subjectKey = "authSubject"

// AuthGate verifies the access credential on every request, entirely
// locally: a signature and expiry check against the configured access
// secret, no round trip to the auth service. A missing token is a 401,
// anything unverifiable is a 403 with a deliberately generic message.
func AuthGate(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		uid, err := codec.Subject(raw, token.ClassAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(subjectKey, uid)
		c.Next()
	}
}

// Subject returns the identity resolved by AuthGate for this request.
func Subject(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return uuid.Nil, false
	}
	uid, ok := v.(uuid.UUID)
	return uid, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
