package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the full schema. A single
// connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedIndustry(t *testing.T, db *gorm.DB, code string, tier risk.Tier) *company.Industry {
	t.Helper()
	ind := &company.Industry{Code: code, Name: code, RiskTier: tier}
	if err := db.Create(ind).Error; err != nil {
		t.Fatalf("seed industry: %v", err)
	}
	return ind
}

func newCompany(ind *company.Industry, owner, taxID string) *company.Company {
	founded := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	return &company.Company{
		CompanyID:     id.NewID32(),
		OwnerID:       owner,
		LegalName:     "Acme " + taxID,
		TaxID:         taxID,
		AnnualRevenue: decimal.NewFromInt(1_000_000),
		EmployeeCount: 12,
		FoundedAt:     &founded,
		IndustryID:    ind.ID,
	}
}

func seedCompany(t *testing.T, db *gorm.DB, owner, taxID string) *company.Company {
	t.Helper()
	ind := &company.Industry{}
	if err := db.Where("code = ?", "TEST").FirstOrCreate(ind, company.Industry{Code: "TEST", Name: "Test", RiskTier: risk.TierB}).Error; err != nil {
		t.Fatalf("seed industry: %v", err)
	}
	c := newCompany(ind, owner, taxID)
	if err := NewCompanyRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return c
}

func makeOffered(t *testing.T, c *company.Company, number string) *application.CreditApplication {
	t.Helper()
	offer, err := risk.Calculate(c.Profile(), risk.DefaultParameters(), time.Now())
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	return application.NewOffered(c, id.NewID32(), number, offer, time.Now())
}
