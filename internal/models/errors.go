package models

import "net/http"

// Error codes carried in the "error" field of API error bodies.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeHelperFailed = "HELPER_FAILED"
	CodeInternal     = "INTERNAL"
)

// AppError is the single error shape returned by the controller and the API.
// Status is the HTTP status the API answers with.
type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func newAppError(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Status: status}
}

// ErrUnauthorized is returned when an API key is configured and the request
// does not carry it.
var ErrUnauthorized = newAppError(CodeUnauthorized, http.StatusUnauthorized, "authentication required")

func ErrNotFound(msg string) *AppError {
	return newAppError(CodeNotFound, http.StatusNotFound, msg)
}

func ErrBadRequest(msg string) *AppError {
	return newAppError(CodeBadRequest, http.StatusBadRequest, msg)
}

// ErrMissingField reports a required request field that was absent or empty.
func ErrMissingField(field string) *AppError {
	e := newAppError(CodeBadRequest, http.StatusBadRequest, field+" is required")
	e.Field = field
	return e
}

func ErrConflict(msg string) *AppError {
	return newAppError(CodeConflict, http.StatusConflict, msg)
}

func ErrHelperFailed(msg string) *AppError {
	return newAppError(CodeHelperFailed, http.StatusBadGateway, msg)
}

func ErrInternal(msg string) *AppError {
	return newAppError(CodeInternal, http.StatusInternalServerError, msg)
}
