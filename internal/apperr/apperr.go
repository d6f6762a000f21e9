// Package apperr defines the error taxonomy shared by services and HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindReference
	KindNotFound
)

const (
	TitleValidation = "Validation Error"
	TitleReference  = "Invalid Reference"
	TitleNotFound   = "Not Found"
	TitleInternal   = "Internal Server Error"

	// DetailInternal is the only detail clients ever see for internal failures.
	DetailInternal = "An unexpected error occurred"
)

// Error is an application error carrying a client-safe title and detail.
type Error struct {
	Kind   Kind
	Title  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Title, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Title: TitleValidation, Detail: detail}
}

func Reference(detail string) *Error {
	return &Error{Kind: KindReference, Title: TitleReference, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Title: TitleNotFound, Detail: detail}
}

// Internal wraps an unexpected failure. The cause is kept for server-side logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Title: TitleInternal, Detail: DetailInternal, Err: err}
}

// From converts any error into an *Error. Errors that are not already
// application errors are treated as internal failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
