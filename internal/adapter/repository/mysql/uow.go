package mysql

import (
	"context"

	"gorm.io/gorm"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Companies:    &CompanyRepository{db: tx},
		Industries:   &IndustryRepository{db: tx},
		Documents:    &DocumentRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Config:       &ConfigRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.CreditApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&company.Industry{},
		&company.Company{},
		&company.Document{},
		&application.CreditApplication{},
		&risk.RiskTierConfig{},
		&risk.SystemConfig{},
	)
}
