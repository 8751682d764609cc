package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidTokenFormat = errors.New("invalid token format")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingFields    = errors.New("missing required fields")
)

// Account errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Course errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrInvalidElementType = errors.New("invalid course element type")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// XP errors
var (
	ErrXPAlreadyAwarded = errors.New("xp already awarded for this course and user")
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// CustomError carries an underlying sentinel plus a user-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
