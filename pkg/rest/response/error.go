package response

import (
	"net/http"
)

type Code string

const (
	MissedValue             Code = "missed_value"
	InvalidValue            Code = "invalid_value"
	InvalidRequestStructure Code = "invalid_request_structure"
)

// GeneralErrorKey names request-level validation failures that are not tied
// to a single field.
const GeneralErrorKey = "general"

type ErrorMessage struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Error is what every handler hands to HandleError. Key is a localization
// message key, never final text; Details is non-empty only for validation
// failures.
type Error interface {
	error
	Status() int
	Key() string
	Details() map[string]ErrorMessage
}

type statusError struct {
	status int
	key    string
}

func (e *statusError) Error() string                    { return e.key }
func (e *statusError) Status() int                      { return e.status }
func (e *statusError) Key() string                      { return e.key }
func (e *statusError) Details() map[string]ErrorMessage { return nil }

func NewInternalError() Error {
	return &statusError{status: http.StatusInternalServerError, key: "common.server_error"}
}

func NewUnauthorizedError(key string) Error {
	return &statusError{status: http.StatusUnauthorized, key: key}
}

func NewForbiddenError(key string) Error {
	return &statusError{status: http.StatusForbidden, key: key}
}

func NewNotFoundError(key string) Error {
	return &statusError{status: http.StatusNotFound, key: key}
}

func NewConflictError(key string) Error {
	return &statusError{status: http.StatusConflict, key: key}
}

func NewBadRequestError(key string) Error {
	return &statusError{status: http.StatusBadRequest, key: key}
}

// ValidationError aggregates per-field failures produced by the form
// validators.
type ValidationError struct {
	errors map[string]ErrorMessage
}

func NewValidationError(errs ...map[string]ErrorMessage) *ValidationError {
	ve := &ValidationError{errors: make(map[string]ErrorMessage)}
	for _, m := range errs {
		for field, msg := range m {
			ve.errors[field] = msg
		}
	}
	return ve
}

func (e *ValidationError) SetError(field string, code Code, message string) {
	e.errors[field] = ErrorMessage{Code: code, Message: message}
}

func (e *ValidationError) Error() string                    { return "validation failed" }
func (e *ValidationError) Status() int                      { return http.StatusBadRequest }
func (e *ValidationError) Key() string                      { return "common.invalid_request" }
func (e *ValidationError) Details() map[string]ErrorMessage { return e.errors }
