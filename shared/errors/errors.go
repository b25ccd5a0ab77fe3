package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError reports bad input shape or emptiness.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// PermissionError reports an actor that is not the required owner.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// InvalidStateError reports an operation not allowed in the current open/closed state.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// LimitExceededError reports the per-user prediction cap.
type LimitExceededError struct {
	Message string
	Limit   int
}

func (e *LimitExceededError) Error() string {
	return e.Message
}

// PersistenceError wraps a failure of the document store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain is of type T.
//
//	if errors.Is[*errors.PermissionError](err) { ... }
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// StatusCode maps an error from the taxonomy to the HTTP status the API answers with.
func StatusCode(err error) int {
	var withCode *ErrorWithStatusCode
	if errors.As(err, &withCode) {
		return withCode.StatusCode
	}

	switch {
	case Is[*ValidationError](err):
		return http.StatusBadRequest
	case Is[*NotFoundError](err):
		return http.StatusNotFound
	case Is[*PermissionError](err):
		return http.StatusForbidden
	case Is[*InvalidStateError](err):
		return http.StatusConflict
	case Is[*LimitExceededError](err):
		return http.StatusUnprocessableEntity
	case Is[*PersistenceError](err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Kind names the taxonomy class of err, for metric labels and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case Is[*ValidationError](err):
		return "validation"
	case Is[*NotFoundError](err):
		return "not_found"
	case Is[*PermissionError](err):
		return "permission"
	case Is[*InvalidStateError](err):
		return "invalid_state"
	case Is[*LimitExceededError](err):
		return "limit_exceeded"
	case Is[*PersistenceError](err):
		return "persistence"
	default:
		return "internal"
	}
}
