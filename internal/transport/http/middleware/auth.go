package middleware

import (
	"net/http"
	"strings"

	"github.com/almasbek/auth-gateway/internal/metrics"
	"github.com/almasbek/auth-gateway/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	// Context keys set by Auth and read by RequireRole and handlers.
	CtxUserID = "userID"
	CtxRole   = "role"

	errNoCredential = "Authentication required"
	errBadToken     = "Token is invalid or expired"
	errForbidden    = "Insufficient role"
)

// tokenVerifier is the subset of token.Issuer the middleware needs.
// Defined here (point of use) so tests can inject a fake.
type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates a Bearer JWT and sets userID and role in the gin context.
// A missing credential is 401; a presented-but-unacceptable one is 403.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			metrics.TokenChecksTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNoCredential})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			metrics.TokenChecksTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNoCredential})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			metrics.TokenChecksTotal.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errBadToken})
			return
		}
		metrics.TokenChecksTotal.WithLabelValues("valid").Inc()

		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route on the role claim set by Auth. Pure check,
// no side effects.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}
		c.Next()
	}
}
