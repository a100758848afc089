package handlers

import (
	"net/http"
	"strings"

	"github.com/Daniel-Moraes1/offer-watch/internal/auth"
	"github.com/gin-gonic/gin"
)

const userEmailKey = "user_email"

// RequireUser rejects requests without a valid bearer token and exposes the
// token's email to downstream handlers. The 401 body carries the sign-in
// location so clients can redirect.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header is missing")
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		claims, err := auth.ParseToken(secret, fields[1])
		if err != nil {
			abortUnauthorized(c, "invalid token: "+err.Error())
			return
		}

		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   msg,
		"sign_in": "/signin",
	})
}

// UserEmail returns the signed-in email set by RequireUser.
func UserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
