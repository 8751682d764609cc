package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/pkg/apperrors"
	"github.com/askelund/learnly/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto HTTP responses. Anything not
// recognized becomes a generic 500 so internals never leak to clients.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email already exists"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid email or password"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Token has expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidTokenFormat):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token"))
	case errors.Is(err, apperrors.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Account not found"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Course not found"))
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Enrollment not found"))
	case errors.Is(err, apperrors.ErrXPAlreadyAwarded):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("XP already awarded for this course and user"))
	case errors.Is(err, apperrors.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Referenced user or course does not exist"))
	case errors.Is(err, apperrors.ErrInvalidElementType):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid course element type"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}
