package companymock

import (
	"context"

	domain "sme-credit-backend/internal/domain/company"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.IndustryRepository = (*IndustryRepo)(nil)
	_ domain.DocumentRepository = (*DocumentRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return domain.ErrNotFound; unset writes succeed.
type Repo struct {
	CreateFn                  func(ctx context.Context, c *domain.Company) error
	GetByCompanyIDFn          func(ctx context.Context, companyID string) (*domain.Company, error)
	GetByCompanyIDForUpdateFn func(ctx context.Context, companyID string) (*domain.Company, error)
	SoftDeleteFn              func(ctx context.Context, c *domain.Company, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Company) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *Repo) GetByCompanyID(ctx context.Context, companyID string) (*domain.Company, error) {
	if m.GetByCompanyIDFn != nil {
		return m.GetByCompanyIDFn(ctx, companyID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetByCompanyIDForUpdate(ctx context.Context, companyID string) (*domain.Company, error) {
	if m.GetByCompanyIDForUpdateFn != nil {
		return m.GetByCompanyIDForUpdateFn(ctx, companyID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) SoftDelete(ctx context.Context, c *domain.Company, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, c, deletedBy)
	}
	return nil
}

type IndustryRepo struct {
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Industry, error)
	GetByCodeFn    func(ctx context.Context, code string) (*domain.Industry, error)
	ListFn         func(ctx context.Context) ([]domain.Industry, error)
	SeedDefaultsFn func(ctx context.Context) error
}

func (m *IndustryRepo) GetByID(ctx context.Context, id uint64) (*domain.Industry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrIndustryNotFound
}
func (m *IndustryRepo) GetByCode(ctx context.Context, code string) (*domain.Industry, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, domain.ErrIndustryNotFound
}
func (m *IndustryRepo) List(ctx context.Context) ([]domain.Industry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
func (m *IndustryRepo) SeedDefaults(ctx context.Context) error {
	if m.SeedDefaultsFn != nil {
		return m.SeedDefaultsFn(ctx)
	}
	return nil
}

// DocumentRepo reports no documents unless told otherwise.
type DocumentRepo struct {
	CreateFn        func(ctx context.Context, d *domain.Document) error
	CountFn         func(ctx context.Context, companyID uint64) (int64, error)
	HasDocumentsFn  func(ctx context.Context, companyID uint64) (bool, error)
	ListByCompanyFn func(ctx context.Context, companyID uint64) ([]domain.Document, error)
}

func (m *DocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *DocumentRepo) Count(ctx context.Context, companyID uint64) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, companyID)
	}
	return 0, nil
}
func (m *DocumentRepo) HasDocuments(ctx context.Context, companyID uint64) (bool, error) {
	if m.HasDocumentsFn != nil {
		return m.HasDocumentsFn(ctx, companyID)
	}
	return false, nil
}
func (m *DocumentRepo) ListByCompany(ctx context.Context, companyID uint64) ([]domain.Document, error) {
	if m.ListByCompanyFn != nil {
		return m.ListByCompanyFn(ctx, companyID)
	}
	return nil, nil
}
