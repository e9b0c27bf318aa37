package application

import (
	"fmt"
	"strings"

	"sme-credit-backend/internal/domain/apperr"
)

type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusApplying          Status = "APPLYING"
	StatusSubmitted         Status = "SUBMITTED"
	StatusUnderReview       Status = "UNDER_REVIEW"
	StatusDocumentsRequired Status = "DOCUMENTS_REQUIRED"
	StatusApproved          Status = "APPROVED"
	StatusRejected          Status = "REJECTED"
	StatusDisbursed         Status = "DISBURSED"
	StatusCancelled         Status = "CANCELLED"
	StatusNotApplicable     Status = "NOT_APPLICABLE"
)

// Statuses in lifecycle order.
var Statuses = []Status{
	StatusDraft, StatusApplying, StatusSubmitted, StatusUnderReview, StatusDocumentsRequired,
	StatusApproved, StatusRejected, StatusDisbursed, StatusCancelled, StatusNotApplicable,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal: no outgoing transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusDisbursed, StatusCancelled, StatusNotApplicable:
		return true
	}
	return false
}

// IsActive reports whether an application in s blocks a new one for the
// same company.
func (s Status) IsActive() bool {
	switch s {
	case StatusApplying, StatusSubmitted, StatusDocumentsRequired, StatusUnderReview:
		return true
	}
	return false
}

// ActiveStatuses lists the blocking statuses.
func ActiveStatuses() []Status {
	return []Status{StatusApplying, StatusSubmitted, StatusDocumentsRequired, StatusUnderReview}
}
