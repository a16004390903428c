package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/logging"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

// HandlerFunc handles a request and returns the response body. A nil body
// with a nil error sends the status without content.
type HandlerFunc func(c *gin.Context) (interface{}, error)

// handle adapts a HandlerFunc to gin, sending result with status on success
func handle(name string, status int, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(), "http."+name)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		result, err := fn(c)
		if err != nil {
			sendError(c, err)
			return
		}
		sendResponse(c, status, result)
	}
}

// sendResponse sends a successful JSON response
func sendResponse(c *gin.Context, status int, result interface{}) {
	if result == nil {
		c.Status(status)
		return
	}
	c.JSON(status, result)
}

// sendError sends an error response with the mapped status code
func sendError(c *gin.Context, err error) {
	apiErr := toAPIError(err)

	logger := logging.WithRequestID(logging.WithComponent("api"), c.GetString(requestIDKey))
	if apiErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", apiErr.Code), zap.Error(err))
	}

	body := gin.H{"error": apiErr.Message}
	if apiErr.Field != "" {
		body["field"] = apiErr.Field
	}
	c.AbortWithStatusJSON(apiErr.Code, body)
}

// pathID reads a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewError(http.StatusNotFound, "Not found.")
	}
	return id, nil
}

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(name, "Enter a whole number.")
	}
	return v, nil
}

// parsePage reads page and page_size, falling back to the defaults
func parsePage(c *gin.Context) models.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return models.NewPage(number, size)
}

// paginated wraps a page of results
func paginated(results interface{}, total int64, page models.Page) gin.H {
	return gin.H{
		"count":     total,
		"page":      page.Number,
		"page_size": page.Size,
		"results":   results,
	}
}

// bindJSON decodes the body into req and reports the first invalid field
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if verr := validationError(err); verr != nil {
			return verr
		}
		return NewError(http.StatusBadRequest, "Malformed request body.")
	}
	return nil
}

// currentUserID returns the authenticated user's id
func currentUserID(c *gin.Context) (int64, error) {
	id := c.GetInt64(userIDKey)
	if id == 0 {
		return 0, fmt.Errorf("authentication credentials were not provided: %w", models.ErrUnauthorized)
	}
	return id, nil
}
