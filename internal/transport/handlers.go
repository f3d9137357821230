package transport

import (
	"errors"
	"net/http"

	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// statusFromError maps domain sentinel errors to HTTP status codes so every
// handler reports failures the same way.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrRegistrationNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrEventFull),
		errors.Is(err, entity.ErrAlreadyRegistered),
		errors.Is(err, entity.ErrEventDatePast),
		errors.Is(err, entity.ErrUserAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), ErrorResponse{Success: false, Error: err.Error()})
}
