package util

import "net/http"

// APIError is the closed error taxonomy every service operation reports
// through. Status picks the HTTP mapping, Code is a stable machine tag,
// Message is safe to show to the caller.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// ValidationError: malformed input, bad timestamps, invalid pause log.
func ValidationError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, "validation_error", message)
}

// NotFoundError: the row does not exist or does not belong to the caller.
func NotFoundError(message string) *APIError {
	if message == "" {
		message = "resource not found"
	}
	return NewAPIError(http.StatusNotFound, "not_found", message)
}

// ConflictError: a uniqueness invariant was violated.
func ConflictError(message string) *APIError {
	return NewAPIError(http.StatusConflict, "conflict", message)
}

func ForbiddenError(message string) *APIError {
	if message == "" {
		message = "forbidden"
	}
	return NewAPIError(http.StatusForbidden, "forbidden", message)
}

func UnauthorizedError() *APIError {
	return NewAPIError(http.StatusUnauthorized, "unauthorized", "unauthorized")
}

func InternalError() *APIError {
	return NewAPIError(http.StatusInternalServerError, "internal_error", "internal server error")
}

// IsValidation reports whether err is a 400-class APIError.
func IsValidation(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusBadRequest
}

// IsNotFound reports whether err is a 404-class APIError.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a 409-class APIError.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusConflict
}
