package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opsdesk/agentdesk/internal/domain"
)

// ErrorResponse is the standard error envelope. Clients surface the message
// field verbatim, so every mapped error message must be user-presentable.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// MapDomainError maps domain errors to an HTTP status and user-facing message.
func MapDomainError(err error) (status int, message string) {
	message = err.Error()

	switch {
	// Auth errors
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, message
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAgentEmailTaken):
		return http.StatusConflict, message

	// Not found
	case errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrListNotFound):
		return http.StatusNotFound, message

	// Upload errors
	case errors.Is(err, domain.ErrNoAgents):
		return http.StatusBadRequest, message
	case errors.Is(err, domain.ErrUnsupportedExt),
		errors.Is(err, domain.ErrNoFile),
		errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, message

	// Validation errors
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidMobile),
		errors.Is(err, domain.ErrShortPassword):
		return http.StatusBadRequest, message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "Internal server error"
	}
}
