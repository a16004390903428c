package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/socialapi/socialapi/internal/models"
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
	Field   string
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// toAPIError maps a domain error onto a status code and client message.
// Unknown errors become a generic 500; the caller logs the original.
func toAPIError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return &Error{Code: http.StatusBadRequest, Message: verr.Message, Field: verr.Field}
	}

	switch {
	case errors.Is(err, models.ErrInvalidOperation):
		return NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		return NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return NewError(http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, models.ErrNotFound):
		return NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAlreadyExists):
		return NewError(http.StatusConflict, err.Error())
	default:
		return NewError(http.StatusInternalServerError, "internal server error")
	}
}
