package application

import (
	"context"
	"time"
)

// SignatureService starts the contract-signature workflow for an approved
// application and returns the remote request id.
type SignatureService interface {
	RequestSignature(ctx context.Context, applicationID, documentRef string) (requestID string, err error)
}

// StatusNotification is pushed to the owner after every committed change.
type StatusNotification struct {
	OwnerID       string    `json:"owner_id"`
	ApplicationID string    `json:"application_id"`
	Number        string    `json:"number"`
	Status        Status    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NotificationFor(a *CreditApplication, at time.Time) StatusNotification {
	return StatusNotification{
		OwnerID:       a.OwnerID,
		ApplicationID: a.ApplicationID,
		Number:        a.Number,
		Status:        a.Status,
		UpdatedAt:     at.UTC(),
	}
}

// Notifier delivers notifications best effort. It never blocks the caller
// on the transport and never reports failure.
type Notifier interface {
	Notify(n StatusNotification)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(StatusNotification) {}
