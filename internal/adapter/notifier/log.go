package notifier

import (
	"context"

	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/application"
)

// LogTransport only logs. Used when no push channel is configured.
type LogTransport struct{ log *zap.Logger }

func NewLogTransport(log *zap.Logger) *LogTransport { return &LogTransport{log: log} }

func (t *LogTransport) Send(_ context.Context, n application.StatusNotification) error {
	t.log.Info("notification",
		zap.String("owner_id", n.OwnerID),
		zap.String("application_id", n.ApplicationID),
		zap.String("number", n.Number),
		zap.String("status", string(n.Status)),
		zap.Time("updated_at", n.UpdatedAt),
	)
	return nil
}
