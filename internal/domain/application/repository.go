package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/domain/apperr"
)

type Repository interface {
	// Create fails with ErrNumberTaken on a duplicate number and with
	// ErrActiveApplicationExists when the company already holds the active slot.
	Create(ctx context.Context, a *CreditApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*CreditApplication, error)
	// GetByApplicationIDForUpdate locks the row for the rest of the tx.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*CreditApplication, error)
	GetActiveByCompanyID(ctx context.Context, companyID uint64) (*CreditApplication, error)
	// LatestNumber returns the highest number starting with prefix, or "".
	LatestNumber(ctx context.Context, prefix string) (string, error)
	// SaveTransition writes a only if its stored status still equals from;
	// otherwise ErrStaleStatus.
	SaveTransition(ctx context.Context, a *CreditApplication, from Status) error
	ListByOwner(ctx context.Context, ownerID string) ([]CreditApplication, error)
	List(ctx context.Context, f ListFilter) ([]CreditApplication, int64, error)
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sortable columns of the admin listing.
var SortColumns = map[string]string{
	"created_at":      "credit_applications.created_at",
	"updated_at":      "credit_applications.updated_at",
	"selected_amount": "credit_applications.selected_amount",
	"number":          "credit_applications.number",
}

type ListFilter struct {
	Statuses    []Status
	CompanyID   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	MinAmount   decimal.NullDecimal
	MaxAmount   decimal.NullDecimal
	SortBy      string
	Desc        bool
	Page        int
	PageSize    int
}

// Normalize fills paging and sort defaults and rejects unknown sort keys
// or inverted ranges.
func (f ListFilter) Normalize() (ListFilter, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PageSize <= 0:
		f.PageSize = DefaultPageSize
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
		f.Desc = true
	}
	if _, ok := SortColumns[f.SortBy]; !ok {
		return f, apperr.New(apperr.ErrValidation, "unsupported sort column "+f.SortBy)
	}
	for _, s := range f.Statuses {
		if !s.Valid() {
			return f, validationf("unknown status %q", s)
		}
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		return f, validationf("created_to is before created_from")
	}
	if f.MinAmount.Valid && f.MaxAmount.Valid && f.MaxAmount.Decimal.LessThan(f.MinAmount.Decimal) {
		return f, validationf("max_amount is below min_amount")
	}
	return f, nil
}

func (f ListFilter) Offset() int { return (f.Page - 1) * f.PageSize }
