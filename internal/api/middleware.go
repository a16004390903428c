package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/auth"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userIDKey       = "user_id"
	usernameKey     = "username"
)

// requestID assigns every request an id, reusing a client supplied one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger writes one structured line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := logging.WithRequestID(logging.WithComponent("http"), c.GetString(requestIDKey))
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			logger = logging.WithTraceID(logger, sc.TraceID().String())
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id := c.GetInt64(userIDKey); id != 0 {
			fields = append(fields, zap.Int64("user_id", id))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("Request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("Request", fields...)
		default:
			logger.Info("Request", fields...)
		}
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// authenticate sets the user from a bearer token. Requests without a token
// pass through anonymous unless required is set; a bad token is always 401.
func authenticate(tokens *auth.TokenManager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(userIDKey) != 0 {
			c.Next()
			return
		}

		token, present := bearerToken(c)
		if !present {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
				return
			}
			c.Next()
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token."})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// requireRole admits authenticated users holding one of roles. The role is
// read from the store so a change applies to tokens already issued.
func (r *Router) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			sendError(c, err)
			return
		}

		user, err := r.social.GetUser(c.Request.Context(), userID)
		if errors.Is(err, models.ErrNotFound) {
			err = fmt.Errorf("user %d no longer exists: %w", userID, models.ErrUnauthorized)
		}
		if err != nil {
			sendError(c, err)
			return
		}

		if !user.HasRole(roles...) {
			sendError(c, fmt.Errorf("role %q on %s %s: %w", user.Role, c.Request.Method, c.FullPath(), models.ErrForbidden))
			return
		}
		c.Next()
	}
}
