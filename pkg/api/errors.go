package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes used in error response bodies.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeConflict        = "conflict"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeValidationError = "validation_error"
	ErrorCodeServerError     = "server_error"
)

// ErrUnauthorized is the single opaque authentication failure signal. Every
// internal auth failure cause (bad signature, expiry, salt mismatch, token
// type confusion, unknown user) collapses into it so a caller cannot
// distinguish them.
var ErrUnauthorized = errors.New("api: unauthorized")

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// Error represents an HTTP-mapped API error. It implements the error
// interface and can be used both by the server (to write responses) and by
// the SDK client (to represent errors).
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this Error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	if e.StatusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequestBody is returned when the JSON body cannot be parsed
	// or required fields are missing.
	ErrInvalidRequestBody = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrCouldNotValidateCredentials is the opaque 401 returned for every
	// authentication failure, regardless of internal cause.
	ErrCouldNotValidateCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "Could not validate credentials",
	}

	// ErrInvalidCredentials is returned when login credentials are rejected.
	ErrInvalidCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "Invalid credentials",
	}

	// ErrAlreadyInUse is returned when a registration conflicts with an
	// existing username or email.
	ErrAlreadyInUse = &Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "Provided username or email is already in use",
	}

	// ErrInvalidConfirmation is returned for a wrong or already-consumed
	// registration confirmation code.
	ErrInvalidConfirmation = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Invalid account or confirmation code",
	}

	// ErrConfirmationExpired is returned when the confirmation code expired
	// and a fresh one was generated.
	ErrConfirmationExpired = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Code expired",
	}

	// ErrResourceNotFound is returned when the requested entity does not exist.
	ErrResourceNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrServer is returned when an unexpected internal condition prevented
	// the request from being fulfilled.
	ErrServer = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrStoreUnavailable is returned when a backing store or cache cannot be
	// reached. Infrastructure failures are never reported as 401.
	ErrStoreUnavailable = &Error{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeServerError,
		Description: "backing store unavailable",
	}
)

// NewValidationError builds a 400 response for a failed field validation.
func NewValidationError(description string) *Error {
	return &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidationError,
		Description: description,
	}
}
