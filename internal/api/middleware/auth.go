package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/resumecraft/internal/auth"
	"github.com/yoockh/resumecraft/internal/utils"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (auth.Identity, error)
}

// Auth rejects requests without a valid bearer token.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present := bearer(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing bearer token",
			})
			return
		}
		if !authenticate(c, a, raw) {
			return
		}
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present := bearer(c)
		if present && !authenticate(c, a, raw) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, a Authenticator, raw string) bool {
	id, err := a.Authenticate(c.Request.Context(), raw)
	if err != nil || id.UserID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "invalid token",
		})
		return false
	}

	c.Set("user_id", id.UserID)
	c.Set("role", string(id.Role))
	c.Set("email", id.Email)
	return true
}

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return raw, raw != ""
}
