package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Operator is the authenticated dashboard user attached to the request
// context. Sessions are written by the identity layer; this middleware only
// reads them.
type Operator struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Session authenticates requests by resolving the session cookie against the
// shared session store.
func Session(client *redis.Client, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		data, err := client.Get(c.Request.Context(), sessionKeyPrefix+token).Bytes()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			return
		}

		var operator Operator
		if err := json.Unmarshal(data, &operator); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set("operator", operator)
		c.Next()
	}
}

// GetOperator reads the operator set by Session.
func GetOperator(c *gin.Context) (Operator, bool) {
	value, exists := c.Get("operator")
	if !exists {
		return Operator{}, false
	}
	operator, ok := value.(Operator)
	return operator, ok
}
