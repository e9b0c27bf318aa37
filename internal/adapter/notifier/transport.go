// Package notifier pushes application status changes to their owners.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"sme-credit-backend/internal/domain/application"
)

// Transport delivers one notification. Having no live subscriber is not an error.
type Transport interface {
	Send(ctx context.Context, n application.StatusNotification) error
}

// ChannelPrefix namespaces the per-owner pub/sub channels.
const ChannelPrefix = "credit:notifications:"

func Channel(ownerID string) string { return ChannelPrefix + ownerID }

type message struct {
	Event string `json:"event"`
	application.StatusNotification
}

func encode(n application.StatusNotification) ([]byte, error) {
	b, err := json.Marshal(message{Event: "application.status_changed", StatusNotification: n})
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return b, nil
}
