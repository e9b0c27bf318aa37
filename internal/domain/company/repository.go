package company

import (
	"context"

	"sme-credit-backend/internal/domain/apperr"
)

var (
	ErrNotFound         = apperr.New(apperr.ErrNotFound, "company not found")
	ErrIndustryNotFound = apperr.New(apperr.ErrNotFound, "industry not found")
	ErrDuplicateTaxID   = apperr.New(apperr.ErrConflict, "tax id already registered")
	ErrDuplicateEmail   = apperr.New(apperr.ErrConflict, "email already registered")
)

type Repository interface {
	// Create fails with ErrDuplicateTaxID / ErrDuplicateEmail on a live duplicate.
	Create(ctx context.Context, c *Company) error
	// GetByCompanyID preloads the industry; deleted companies are not found.
	GetByCompanyID(ctx context.Context, companyID string) (*Company, error)
	// GetByCompanyIDForUpdate also takes a row lock for the rest of the tx.
	GetByCompanyIDForUpdate(ctx context.Context, companyID string) (*Company, error)
	SoftDelete(ctx context.Context, c *Company, deletedBy string) error
}

type IndustryRepository interface {
	GetByID(ctx context.Context, id uint64) (*Industry, error)
	GetByCode(ctx context.Context, code string) (*Industry, error)
	List(ctx context.Context) ([]Industry, error)
	SeedDefaults(ctx context.Context) error
}

// DocumentStore is the supporting-document gate consulted before an offer.
type DocumentStore interface {
	HasDocuments(ctx context.Context, companyID uint64) (bool, error)
	Count(ctx context.Context, companyID uint64) (int64, error)
}

type DocumentRepository interface {
	DocumentStore
	Create(ctx context.Context, d *Document) error
	ListByCompany(ctx context.Context, companyID uint64) ([]Document, error)
}
