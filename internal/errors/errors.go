package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrInvalidFormat is returned when the login email is not shaped like local@domain.tld.
	ErrInvalidFormat = errors.New("invalid email format")
	// ErrWeakCredential is returned when the login password is shorter than the minimum length.
	ErrWeakCredential = errors.New("password must be at least 6 characters")
	// ErrAuthenticationFailed is returned when the credential pair is not the admin pair.
	ErrAuthenticationFailed = errors.New("invalid email or password")
	// ErrUnauthorized is returned when a session token is missing, revoked or unknown.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUploadFailed is returned when the cover image could not be stored.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrPersistFailed is returned when the article document could not be written.
	ErrPersistFailed = errors.New("article could not be saved")
	// ErrSubmitInFlight is returned when a draft is submitted while a previous submit is running.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrArticleNotFound is returned when a published article does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrInvalidCommand is returned for unknown editor commands or arguments out of range.
	ErrInvalidCommand = errors.New("invalid editor command")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Fields []FieldViolation `json:"fields,omitempty"`
}

// FieldViolation describes one failed rule on one form field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found during a single submit.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Rules returns the violated rule keyed by field name.
func (e *ValidationError) Rules() map[string]string {
	rules := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		rules[v.Field] = v.Rule
	}
	return rules
}

// NewValidationError returns nil when there are no violations.
func NewValidationError(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldViolation
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, "validation failed", "VALIDATION_FAILED")
		httpErr.Fields = ve.Violations
		return httpErr
	}

	switch {
	case errors.Is(err, ErrInvalidFormat):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidFormat.Error(), "INVALID_FORMAT")
	case errors.Is(err, ErrWeakCredential):
		return NewHTTPError(http.StatusBadRequest, ErrWeakCredential.Error(), "WEAK_CREDENTIAL")
	case errors.Is(err, ErrAuthenticationFailed):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthenticationFailed.Error(), "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUploadFailed):
		return NewHTTPError(http.StatusBadGateway, ErrUploadFailed.Error(), "UPLOAD_FAILED")
	case errors.Is(err, ErrPersistFailed):
		return NewHTTPError(http.StatusBadGateway, ErrPersistFailed.Error(), "PERSIST_FAILED")
	case errors.Is(err, ErrSubmitInFlight):
		return NewHTTPError(http.StatusConflict, ErrSubmitInFlight.Error(), "SUBMIT_IN_FLIGHT")
	case errors.Is(err, ErrArticleNotFound):
		return NewHTTPError(http.StatusNotFound, ErrArticleNotFound.Error(), "ARTICLE_NOT_FOUND")
	case errors.Is(err, ErrInvalidCommand):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COMMAND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
