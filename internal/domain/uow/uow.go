package uow

import (
	"context"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/risk"
)

// Repos are bound to one transaction.
type Repos struct {
	Companies    company.Repository
	Industries   company.IndustryRepository
	Documents    company.DocumentRepository
	Applications application.Repository
	Config       risk.ConfigRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.CreditApplication) error) error
}
