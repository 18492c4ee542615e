package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Message and Details are
// what the wire envelope renders; Err is kept for logs only.
type DomainError struct {
	Message    string
	HTTPStatus int
	Details    []string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports one entry per offending field.
func NewValidationError(details []string) error {
	return &DomainError{
		Message:    "Validation error",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NewBadRequest reports a malformed request without field detail.
func NewBadRequest(message string) error {
	return &DomainError{Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewNotFound reports a missing resource. The message is uniform for a
// given resource regardless of why the lookup failed.
func NewNotFound(resource string) error {
	return &DomainError{
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewUnauthorized(message string) error {
	return &DomainError{Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewForbidden(message string) error {
	return &DomainError{Message: message, HTTPStatus: http.StatusForbidden}
}

func NewInternalError(err error) error {
	return &DomainError{
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized
// errors become opaque 500s so storage detail never leaks to callers.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		de, _ := NewNotFound("Resource").(*DomainError)
		return de
	}
	de, _ := NewInternalError(err).(*DomainError)
	return de
}
