package application

import (
	"fmt"
	"strings"

	"sme-credit-backend/internal/domain/apperr"
)

var (
	ErrNotFound                = apperr.New(apperr.ErrNotFound, "credit application not found")
	ErrInvalidTransition       = apperr.New(apperr.ErrConflict, "invalid status transition")
	ErrStaleStatus             = fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	ErrActiveApplicationExists = apperr.New(apperr.ErrConflict, "company already has an active credit application")
	ErrNumberExhausted         = apperr.New(apperr.ErrConflict, "could not allocate a unique application number")
	ErrNoOffer                 = apperr.New(apperr.ErrValidation, "application has no offer")

	// ErrNumberTaken is a duplicate application number on insert. The issuer
	// retries on it; callers never see it.
	ErrNumberTaken = apperr.New(apperr.ErrConflict, "application number already taken")
)

func invalidTransition(from, to Status, allowed []Status) error {
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	list := "none"
	if len(names) > 0 {
		list = strings.Join(names, ", ")
	}
	return fmt.Errorf("%w from %s to %s; allowed: %s", ErrInvalidTransition, from, to, list)
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperr.ErrValidation}, args...)...)
}
