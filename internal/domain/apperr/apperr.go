// Package apperr holds the error taxonomy shared by every layer.
// Domain errors wrap one of these sentinels so callers can branch with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation: malformed or out-of-range input, surfaced verbatim.
	ErrValidation = errors.New("validation error")
	// ErrNotFound: company, application or reference row absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict: uniqueness or state conflicts.
	ErrConflict = errors.New("conflict")
	// ErrDependency: an external collaborator failed or timed out.
	ErrDependency = errors.New("dependency failure")
	// ErrConfiguration: required reference configuration is missing.
	ErrConfiguration = errors.New("configuration error")
)

// Kind names the taxonomy bucket of err, or "" when err is outside it.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrDependency):
		return "dependency"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return ""
	}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error with message msg that matches kind under errors.Is.
func New(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }
