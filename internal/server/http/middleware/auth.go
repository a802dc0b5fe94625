package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// IDTokenContextKey is a gin context key for the merchant identity token.
	IDTokenContextKey = "idToken"
	authCookieName    = "dashboard_token"
)

// BearerToken extracts the identity token from the Authorization header or
// the session cookie and stores it in the request context. Tokens are minted
// and validated upstream; this service only forwards them to the cloud
// endpoints that require them.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			c.Set(IDTokenContextKey, token)
		}
		c.Next()
	}
}

// AuthRequired rejects requests that carry no identity token. Endpoints that
// only read local state stay open; endpoints that call authenticated cloud
// functions sit behind this.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(IDTokenContextKey, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}
