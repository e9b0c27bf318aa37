package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/infrastructure/logging"
)

const DefaultTimeout = 3 * time.Second

var _ application.Notifier = (*Dispatcher)(nil)

// Dispatcher is the fire-and-forget application.Notifier: each notification
// is sent on its own goroutine under a timeout, and failures are only logged.
type Dispatcher struct {
	transport Transport
	timeout   time.Duration
	log       *zap.Logger
	wg        sync.WaitGroup
}

func NewDispatcher(t Transport, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{transport: t, timeout: timeout, log: logging.OrNop(log)}
}

func (d *Dispatcher) Notify(n application.StatusNotification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.send(n); err != nil {
			d.log.Warn("notification failed",
				zap.String("owner_id", n.OwnerID),
				zap.String("application_id", n.ApplicationID),
				zap.String("status", string(n.Status)),
				zap.Error(err),
			)
		}
	}()
}

func (d *Dispatcher) send(n application.StatusNotification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.transport.Send(ctx, n)
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
