package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the single error body shape of the API: {"error": <message>}
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success body for write operations
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse creates an error response with the given message
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// FormatBindingError turns a gin/validator binding error into a
// human-readable message without leaking internals.
func FormatBindingError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return formatFieldError(verrs[0])
	}
	return "Invalid request form"
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
