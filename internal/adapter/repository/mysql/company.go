package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	companyDomain "sme-credit-backend/internal/domain/company"
)

type CompanyRepository struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) *CompanyRepository { return &CompanyRepository{db: db} }

// Create claims the tax id and email keys before inserting.
func (r *CompanyRepository) Create(ctx context.Context, c *companyDomain.Company) error {
	c.ClaimKeys()
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	switch {
	case err == nil:
		return nil
	case violates(err, "active_tax_id"):
		return fmt.Errorf("%w: %s", companyDomain.ErrDuplicateTaxID, c.TaxID)
	case violates(err, "active_email"):
		return fmt.Errorf("%w: %s", companyDomain.ErrDuplicateEmail, *c.Email)
	default:
		return err
	}
}

func (r *CompanyRepository) GetByCompanyID(ctx context.Context, companyID string) (*companyDomain.Company, error) {
	var out companyDomain.Company
	err := r.db.WithContext(ctx).
		Preload("Industry").
		Where("company_id = ?", companyID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, companyDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CompanyRepository) GetByCompanyIDForUpdate(ctx context.Context, companyID string) (*companyDomain.Company, error) {
	var out companyDomain.Company
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ?", companyID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, companyDomain.ErrNotFound)
	}
	var ind companyDomain.Industry
	if err := r.db.WithContext(ctx).First(&ind, out.IndustryID).Error; err != nil {
		return nil, notFound(err, companyDomain.ErrIndustryNotFound)
	}
	out.Industry = &ind
	return &out, nil
}

// SoftDelete frees the unique keys and stamps deleted_at in one statement.
func (r *CompanyRepository) SoftDelete(ctx context.Context, c *companyDomain.Company, deletedBy string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&companyDomain.Company{}).
		Where("id = ? AND deleted_at IS NULL", c.ID).
		Updates(map[string]any{
			"active_tax_id": nil,
			"active_email":  nil,
			"deleted_by":    deletedBy,
			"deleted_at":    now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return companyDomain.ErrNotFound
	}
	c.ReleaseKeys()
	c.DeletedBy = &deletedBy
	c.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	return nil
}

type IndustryRepository struct{ db *gorm.DB }

func NewIndustryRepository(db *gorm.DB) *IndustryRepository { return &IndustryRepository{db: db} }

func (r *IndustryRepository) GetByID(ctx context.Context, id uint64) (*companyDomain.Industry, error) {
	var out companyDomain.Industry
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, companyDomain.ErrIndustryNotFound)
	}
	return &out, nil
}

func (r *IndustryRepository) GetByCode(ctx context.Context, code string) (*companyDomain.Industry, error) {
	var out companyDomain.Industry
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&out).Error; err != nil {
		return nil, notFound(err, companyDomain.ErrIndustryNotFound)
	}
	return &out, nil
}

func (r *IndustryRepository) List(ctx context.Context) ([]companyDomain.Industry, error) {
	var out []companyDomain.Industry
	err := r.db.WithContext(ctx).Order("code ASC").Find(&out).Error
	return out, err
}

// SeedDefaults inserts the default industries, skipping codes already present.
func (r *IndustryRepository) SeedDefaults(ctx context.Context) error {
	rows := companyDomain.DefaultIndustries()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *companyDomain.Document) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *DocumentRepository) Count(ctx context.Context, companyID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&companyDomain.Document{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}

func (r *DocumentRepository) HasDocuments(ctx context.Context, companyID uint64) (bool, error) {
	n, err := r.Count(ctx, companyID)
	return n > 0, err
}

func (r *DocumentRepository) ListByCompany(ctx context.Context, companyID uint64) ([]companyDomain.Document, error) {
	var out []companyDomain.Document
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
