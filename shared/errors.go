package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrorCategory represents the different failure classes the API surfaces.
type ErrorCategory string

const (
	ErrorCategoryValidation      ErrorCategory = "validation"
	ErrorCategoryUnauthenticated ErrorCategory = "unauthenticated"
	ErrorCategoryInvalidToken    ErrorCategory = "invalid_token"
	ErrorCategoryNotFound        ErrorCategory = "not_found"
	ErrorCategoryConflict        ErrorCategory = "conflict"
	ErrorCategoryPersistence     ErrorCategory = "persistence"
)

// APIError is a standardized error carrying its category and HTTP status.
type APIError struct {
	Category  ErrorCategory `json:"category"`
	Message   string        `json:"message"`
	Operation string        `json:"operation"`
	Timestamp time.Time     `json:"timestamp"`
	Cause     error         `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error category onto the HTTP status the handlers return.
func (e *APIError) StatusCode() int {
	switch e.Category {
	case ErrorCategoryValidation, ErrorCategoryInvalidToken, ErrorCategoryConflict:
		return 400
	case ErrorCategoryUnauthenticated:
		return 401
	case ErrorCategoryNotFound:
		return 404
	default:
		return 500
	}
}

func NewAPIError(category ErrorCategory, message, operation string, cause error) *APIError {
	return &APIError{
		Category:  category,
		Message:   message,
		Operation: operation,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

func NewValidationError(message, operation string) *APIError {
	return NewAPIError(ErrorCategoryValidation, message, operation, nil)
}

func NewUnauthenticatedError(message, operation string) *APIError {
	return NewAPIError(ErrorCategoryUnauthenticated, message, operation, nil)
}

func NewNotFoundError(message, operation string) *APIError {
	return NewAPIError(ErrorCategoryNotFound, message, operation, nil)
}

func NewConflictError(message, operation string) *APIError {
	return NewAPIError(ErrorCategoryConflict, message, operation, nil)
}

func NewPersistenceError(operation string, cause error) *APIError {
	message := "database operation failed"
	if cause != nil {
		message = cause.Error()
	}
	return NewAPIError(ErrorCategoryPersistence, message, operation, cause)
}

// LogError logs the error with structured fields.
func (e *APIError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category": e.Category,
		"error_message":  e.Message,
		"operation":      e.Operation,
		"timestamp":      e.Timestamp,
		"underlying":     e.Cause,
	}).Error("API error occurred")
}

// AsAPIError extracts an *APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, used to map duplicate registrations to Conflict responses.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
