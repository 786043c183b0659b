package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-row store lookups that matched nothing.
var ErrNotFound = errors.New("not found")

// ErrorKind classifies a failed operation so the HTTP layer can translate
// it to a status code in one place instead of per route.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindUpstream   ErrorKind = "upstream"
)

// AppError is the single error type services return. Message is safe to
// surface to clients; Err holds the underlying cause, if any.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Invalid builds a validation error describing the violated constraint.
func Invalid(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError builds a not-found error for single-resource lookups.
func NotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a store or transport failure. The store's message is
// surfaced verbatim and the request is not retried.
func Upstream(err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: err.Error(), Err: err}
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var app *AppError
	if errors.As(err, &app) {
		return app, true
	}
	return nil, false
}
