// Package apperrors carries the uniform (status code, message) envelope
// every repository operation resolves with. Handlers map these onto the
// wire; the messages travel verbatim.
package apperrors

import "net/http"

// Error is a status-coded, user-visible error.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Forbidden builds a 403 envelope (validation or authorization failure).
func Forbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

// NotFound builds a 404 envelope.
func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// Internal builds a 500 envelope (store failure).
func Internal(message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message}
}

// CodeOf returns the status code carried by err, or 500 for any error
// that is not an envelope.
func CodeOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-visible message carried by err, or a
// generic one for any error that is not an envelope.
func MessageOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	return "Unknown error"
}
