// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "auth.userID"

// Auth validates the bearer token and stores the caller's user id (the token
// subject) in the gin context. Account management and token issuance are
// owned by the external identity service; only identity extraction happens
// here.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
				return
			}
			raw = parts[1]
		} else {
			// Browsers cannot set headers on a websocket upgrade, so the
			// socket endpoint passes the token as a query parameter.
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// UserID returns the authenticated caller's user id, or empty when the
// request was not authenticated.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
