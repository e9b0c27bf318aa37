package applicationmock

import (
	"context"

	domain "sme-credit-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return domain.ErrNotFound; unset writes succeed.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.CreditApplication) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.CreditApplication, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.CreditApplication, error)
	GetActiveByCompanyIDFn        func(ctx context.Context, companyID uint64) (*domain.CreditApplication, error)
	LatestNumberFn                func(ctx context.Context, prefix string) (string, error)
	SaveTransitionFn              func(ctx context.Context, a *domain.CreditApplication, from domain.Status) error
	ListByOwnerFn                 func(ctx context.Context, ownerID string) ([]domain.CreditApplication, error)
	ListFn                        func(ctx context.Context, f domain.ListFilter) ([]domain.CreditApplication, int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.CreditApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetActiveByCompanyID(ctx context.Context, companyID uint64) (*domain.CreditApplication, error) {
	if m.GetActiveByCompanyIDFn != nil {
		return m.GetActiveByCompanyIDFn(ctx, companyID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) LatestNumber(ctx context.Context, prefix string) (string, error) {
	if m.LatestNumberFn != nil {
		return m.LatestNumberFn(ctx, prefix)
	}
	return "", nil
}
func (m *Repo) SaveTransition(ctx context.Context, a *domain.CreditApplication, from domain.Status) error {
	if m.SaveTransitionFn != nil {
		return m.SaveTransitionFn(ctx, a, from)
	}
	return nil
}
func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.CreditApplication, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.CreditApplication, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, nil
}
