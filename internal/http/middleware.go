package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobly/internal/auth"
)

const (
	requestIDHeader = "X-Request-ID"
	identityKey     = "identity"
	requestIDKey    = "requestID"
)

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		if id := identityFrom(c); id != nil {
			entry = entry.WithField("username", id.Username)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithError(c.Errors.Last().Err)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Recovery turns panics into a 500 response and logs them.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  recovered,
		}).Error("panic recovered")
		writeErrorStatus(c, http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	})
}

// authenticate stores the caller's identity when a valid bearer token is
// present. A missing or invalid token leaves the request anonymous.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || h.tokens == nil {
			c.Next()
			return
		}

		id, err := h.tokens.Parse(token)
		if err != nil {
			h.logger.WithError(err).Debug("ignoring bearer token")
			c.Next()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme name is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	const scheme = "Bearer "
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	return strings.TrimSpace(header[len(scheme):]), true
}

func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

func EnsureLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAuthenticated(identityFrom(c)); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func EnsureAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireElevated(identityFrom(c)); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// EnsureAdminOrSelf admits admins and the user named by the route parameter.
func EnsureAdminOrSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireElevatedOrSelf(identityFrom(c), c.Param(param)); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// rateLimit counts requests per client address. When the limiter itself
// fails the request is let through.
func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		allowed, err := h.limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			h.logger.WithError(err).WithField("client_ip", c.ClientIP()).Error("failed to check rate limit")
			c.Next()
			return
		}
		if !allowed {
			h.logger.WithField("client_ip", c.ClientIP()).Warn("rate limit exceeded")
			writeErrorStatus(c, http.StatusTooManyRequests, "Too Many Requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
