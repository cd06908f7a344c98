package apierror

import "net/http"

// Error is an API error carrying the HTTP status it should be rendered with.
// The storefront and admin UIs both expect a plain {"error": message} body,
// so there is no machine-readable code field.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized creates a 401 Unauthorized error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict creates a 409 Conflict error.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Internal creates a 500 Internal Server Error.
//
// Remote permission problems (sheet shared without editor access) are reported
// through this constructor on purpose: remapping them to 403 would make them
// indistinguishable from the app's own auth failures.
func Internal(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
