package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	appDomain "sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/uow"
	"sme-credit-backend/pkg/id"
	"sme-credit-backend/pkg/retry"
)

// MaxNumberAttempts bounds issuance retries on number collisions.
const MaxNumberAttempts = 3

// NumberIssuer allocates year-scoped application numbers as max+1. Two
// concurrent issuers can read the same max; the unique index rejects the
// loser, which retries in a fresh transaction.
type NumberIssuer struct {
	prefix string
	now    func() time.Time
}

func NewNumberIssuer(prefix string) *NumberIssuer {
	return &NumberIssuer{prefix: prefix, now: time.Now}
}

// Next returns the number following the latest one of the current year.
func (n *NumberIssuer) Next(ctx context.Context, repo appDomain.Repository) (string, error) {
	year := n.now().UTC().Year()
	latest, err := repo.LatestNumber(ctx, id.NumberPrefix(n.prefix, year))
	if err != nil {
		return "", err
	}
	seq := 0
	if latest != "" {
		if seq, err = id.ParseSequence(latest); err != nil {
			return "", err
		}
	}
	return id.FormatApplicationNumber(n.prefix, year, seq+1)
}

// BuildFunc prepares an application inside the issuing transaction. Its
// Number is assigned afterwards.
type BuildFunc func(ctx context.Context, r uow.Repos) (*appDomain.CreditApplication, error)

// Create runs build, numbers the result and inserts it, all in one
// transaction per attempt. Only number collisions are retried.
func (n *NumberIssuer) Create(ctx context.Context, tx uow.UnitOfWork, build BuildFunc) (*appDomain.CreditApplication, error) {
	var created *appDomain.CreditApplication
	err := retry.Do(ctx, MaxNumberAttempts, isNumberTaken, func(ctx context.Context, _ int) error {
		return tx.WithinTx(ctx, func(r uow.Repos) error {
			a, err := build(ctx, r)
			if err != nil {
				return err
			}
			number, err := n.Next(ctx, r.Applications)
			if err != nil {
				return err
			}
			a.Number = number
			if err := r.Applications.Create(ctx, a); err != nil {
				return err
			}
			created = a
			return nil
		})
	})
	if errors.Is(err, retry.ErrExhausted) {
		return nil, fmt.Errorf("%w: %d attempts", appDomain.ErrNumberExhausted, MaxNumberAttempts)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func isNumberTaken(err error) bool { return errors.Is(err, appDomain.ErrNumberTaken) }
