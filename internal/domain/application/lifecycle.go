package application

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransitionInput is an admin status change. Unset options leave the
// corresponding field untouched.
type TransitionInput struct {
	To    Status
	Actor string
	// Reason is recorded in the history entry. On REJECTED it doubles as the
	// rejection reason when RejectionReason is unset.
	Reason          Option[string]
	RejectionReason Option[string]
	InternalNotes   Option[string]
	UserNotes       Option[string]
	ApprovedAmount  Option[decimal.Decimal]
	RiskScore       Option[int]
}

// rejectionReason picks the non-blank rejection reason, if any.
func (in TransitionInput) rejectionReason() (string, bool) {
	for _, o := range []Option[string]{in.RejectionReason, in.Reason} {
		if v, ok := o.Get(); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// historyReason is the explicit reason, else user notes, else internal
// notes. internal reports that the last one was used.
func (in TransitionInput) historyReason() (reason string, internal bool) {
	for _, o := range []Option[string]{in.Reason, in.RejectionReason, in.UserNotes} {
		if v, ok := o.Get(); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), false
		}
	}
	if v, ok := in.InternalNotes.Get(); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	return defaultReason, false
}

func (in TransitionInput) validate() error {
	if strings.TrimSpace(in.Actor) == "" {
		return validationf("actor is required")
	}
	if amt, ok := in.ApprovedAmount.Get(); ok && !amt.IsPositive() {
		return validationf("approvedAmount must be greater than zero, got %s", amt)
	}
	if score, ok := in.RiskScore.Get(); ok && (score < 0 || score > 100) {
		return validationf("riskScore must be within [0, 100], got %d", score)
	}
	if in.To == StatusRejected {
		if _, ok := in.rejectionReason(); !ok {
			return validationf("rejectionReason is required when rejecting an application")
		}
	}
	return nil
}

// merge copies every supplied field onto a.
func (in TransitionInput) merge(a *CreditApplication) {
	if in.To == StatusRejected {
		r, _ := in.rejectionReason()
		a.RejectionReason = &r
	} else if v, ok := in.RejectionReason.Get(); ok {
		a.RejectionReason = &v
	}
	if v, ok := in.InternalNotes.Get(); ok {
		a.InternalNotes = &v
	}
	if v, ok := in.UserNotes.Get(); ok {
		a.UserNotes = &v
	}
	if v, ok := in.ApprovedAmount.Get(); ok {
		a.ApprovedAmount = decimal.NewNullDecimal(v)
	}
	if v, ok := in.RiskScore.Get(); ok {
		a.RiskScore = &v
	}
}

// Transition applies an admin status change. On error a is left untouched.
// Side effects (signature request, notification) belong to the caller.
func (a *CreditApplication) Transition(table TransitionTable, in TransitionInput, now time.Time) error {
	if !table.CanTransition(a.Status, in.To) {
		return invalidTransition(a.Status, in.To, table.Allowed(a.Status))
	}
	if err := in.validate(); err != nil {
		return err
	}

	now = now.UTC()
	actor := strings.TrimSpace(in.Actor)
	a.Status = in.To
	a.ReviewedBy = &actor
	a.ReviewedAt = &now
	switch in.To {
	case StatusSubmitted:
		a.SubmittedAt = &now
	case StatusApproved:
		a.ApprovedAt = &now
	case StatusDisbursed:
		a.DisbursedAt = &now
	}
	in.merge(a)
	reason, internal := in.historyReason()
	a.StatusHistory = a.StatusHistory.Append(StatusEntry{
		Status: in.To, At: now, ChangedBy: actor, Reason: reason, Internal: internal,
	})
	a.syncActiveSlot()
	return nil
}

// Confirm records the borrower's chosen amount and term and submits the
// application. Only an APPLYING application with an offer can be confirmed.
func (a *CreditApplication) Confirm(table TransitionTable, amount decimal.Decimal, termMonths int, actor string, now time.Time) error {
	if a.Status != StatusApplying || !table.CanTransition(a.Status, StatusSubmitted) {
		return invalidTransition(a.Status, StatusSubmitted, table.Allowed(a.Status))
	}
	if !a.Offer.Present() {
		return ErrNoOffer
	}
	if amount.LessThan(a.Offer.MinAmount) || amount.GreaterThan(a.Offer.MaxAmount) {
		return validationf("selectedAmount %s is outside the offered range [%s, %s]",
			amount, a.Offer.MinAmount, a.Offer.MaxAmount)
	}
	if !a.Offer.AllowsTerm(termMonths) {
		return validationf("selectedTermMonths %d is not one of the allowed terms %v", termMonths, a.Offer.AllowedTerms)
	}

	now = now.UTC()
	term := termMonths
	a.SelectedAmount = decimal.NewNullDecimal(amount)
	a.SelectedTermMonths = &term
	a.Status = StatusSubmitted
	a.SubmittedAt = &now
	a.StatusHistory = a.StatusHistory.Append(StatusEntry{
		Status: StatusSubmitted, At: now, ChangedBy: actor, Reason: confirmedReason,
	})
	a.syncActiveSlot()
	return nil
}
