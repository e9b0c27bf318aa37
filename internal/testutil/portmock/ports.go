// Package portmock holds recording fakes for the collaborator ports.
package portmock

import (
	"context"
	"errors"
	"sync"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/risk"
)

var (
	_ application.Notifier         = (*Notifier)(nil)
	_ application.SignatureService = (*Signer)(nil)
	_ risk.ConfigProvider          = (*Config)(nil)
)

var errUnimplemented = errors.New("portmock: method not implemented")

// Notifier records every notification it is handed.
type Notifier struct {
	mu   sync.Mutex
	sent []application.StatusNotification
}

func (n *Notifier) Notify(s application.StatusNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, s)
}

func (n *Notifier) Sent() []application.StatusNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]application.StatusNotification(nil), n.sent...)
}

type Signer struct {
	RequestSignatureFn func(ctx context.Context, applicationID, documentRef string) (string, error)
}

func (s *Signer) RequestSignature(ctx context.Context, applicationID, documentRef string) (string, error) {
	if s.RequestSignatureFn != nil {
		return s.RequestSignatureFn(ctx, applicationID, documentRef)
	}
	return "", errUnimplemented
}

// Config serves Params, or the system defaults when Params is nil.
type Config struct {
	Params *risk.Parameters
	Err    error
}

func (c *Config) Parameters(context.Context) (risk.Parameters, error) {
	if c.Err != nil {
		return risk.Parameters{}, c.Err
	}
	if c.Params == nil {
		return risk.DefaultParameters(), nil
	}
	return *c.Params, nil
}
