// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxable-tracker/backend/config"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/dto"
)

// BasicAuthMiddleware enforces the single-user HTTP Basic credential.
// Credential comparison is constant-time; when a bcrypt hash is configured
// it takes precedence over the plaintext password.
type BasicAuthMiddleware struct {
	cfg         *config.AuthConfig
	rateLimiter *RateLimiter
}

// NewBasicAuthMiddleware creates a new basic auth middleware instance.
func NewBasicAuthMiddleware(cfg *config.AuthConfig, rateLimiter *RateLimiter) *BasicAuthMiddleware {
	return &BasicAuthMiddleware{
		cfg:         cfg,
		rateLimiter: rateLimiter,
	}
}

// Authenticate returns a Gin middleware handler that validates the Basic
// credential on every request. Repeated failures from one IP are throttled.
func (m *BasicAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if m.rateLimiter != nil && m.rateLimiter.Blocked(clientIP) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many failed attempts. Please try again later.",
			})
			c.Abort()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || !m.credentialsValid(username, password) {
			if m.rateLimiter != nil {
				m.rateLimiter.RecordFailure(clientIP)
			}
			c.Header("WWW-Authenticate", `Basic realm="taxable-tracker"`)
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// credentialsValid checks the submitted credential pair against the
// configured single user.
func (m *BasicAuthMiddleware) credentialsValid(username, password string) bool {
	if m.cfg.Username == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.cfg.Username)) == 1

	var passOK bool
	if m.cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(m.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passOK = m.cfg.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(m.cfg.Password)) == 1
	}

	return userOK && passOK
}
