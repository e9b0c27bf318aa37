package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "sme-credit-backend/internal/domain/application"
	companyDomain "sme-credit-backend/internal/domain/company"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.CreditApplication) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
	switch {
	case err == nil:
		return nil
	case violates(err, "active_company"):
		return appDomain.ErrActiveApplicationExists
	case violates(err, "number"):
		return appDomain.ErrNumberTaken
	default:
		return err
	}
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.CreditApplication, error) {
	var out appDomain.CreditApplication
	err := r.db.WithContext(ctx).
		Preload("Company", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("application_id = ?", applicationID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.CreditApplication, error) {
	var out appDomain.CreditApplication
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	// loaded apart so the lock stays on the application row only
	var c companyDomain.Company
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", out.CompanyRef).First(&c).Error; err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	out.Company = &c
	return &out, nil
}

func (r *ApplicationRepository) GetActiveByCompanyID(ctx context.Context, companyID uint64) (*appDomain.CreditApplication, error) {
	var out appDomain.CreditApplication
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status IN ?", companyID, appDomain.ActiveStatuses()).
		Order("created_at DESC, id DESC").
		First(&out).Error
	if err != nil {
		return nil, notFound(err, appDomain.ErrNotFound)
	}
	return &out, nil
}

// LatestNumber includes soft-deleted rows: their numbers stay taken.
func (r *ApplicationRepository) LatestNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&appDomain.CreditApplication{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

var transitionColumns = []string{
	"status", "active_company_id", "offer_details",
	"selected_amount", "selected_term_months", "approved_amount", "risk_score",
	"rejection_reason", "internal_notes", "user_notes", "status_history",
	"signature_request_id", "reviewed_by", "reviewed_at",
	"submitted_at", "approved_at", "disbursed_at", "updated_at",
}

// SaveTransition is a compare-and-set on status.
func (r *ApplicationRepository) SaveTransition(ctx context.Context, a *appDomain.CreditApplication, from appDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(a).
		Where("status = ?", from).
		Select(transitionColumns).
		Updates(a)
	if res.Error != nil {
		if violates(res.Error, "active_company") {
			return appDomain.ErrActiveApplicationExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrStaleStatus
	}
	return nil
}

// ListByOwner hides applications of deleted companies.
func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]appDomain.CreditApplication, error) {
	var out []appDomain.CreditApplication
	err := r.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = credit_applications.company_id AND companies.deleted_at IS NULL").
		Preload("Company").
		Where("credit_applications.owner_id = ?", ownerID).
		Order("credit_applications.created_at DESC, credit_applications.id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.ListFilter) ([]appDomain.CreditApplication, int64, error) {
	f, err := f.Normalize()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := " ASC"
	if f.Desc {
		dir = " DESC"
	}
	var out []appDomain.CreditApplication
	err = r.filtered(ctx, f).
		Preload("Company", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order(appDomain.SortColumns[f.SortBy] + dir).
		Order("credit_applications.id" + dir).
		Limit(f.PageSize).
		Offset(f.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ApplicationRepository) filtered(ctx context.Context, f appDomain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&appDomain.CreditApplication{}).
		Joins("JOIN companies ON companies.id = credit_applications.company_id")
	if len(f.Statuses) > 0 {
		q = q.Where("credit_applications.status IN ?", f.Statuses)
	}
	if f.CompanyID != "" {
		q = q.Where("companies.company_id = ?", f.CompanyID)
	}
	if f.CreatedFrom != nil {
		q = q.Where("credit_applications.created_at >= ?", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		q = q.Where("credit_applications.created_at <= ?", f.CreatedTo.UTC())
	}
	if f.MinAmount.Valid {
		q = q.Where("credit_applications.selected_amount >= ?", f.MinAmount.Decimal)
	}
	if f.MaxAmount.Valid {
		q = q.Where("credit_applications.selected_amount <= ?", f.MaxAmount.Decimal)
	}
	return q
}
