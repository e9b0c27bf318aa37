// Package testdb opens migrated in-memory sqlite databases for usecase tests.
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sme-credit-backend/internal/adapter/repository/mysql"
	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/pkg/id"
)

// Open returns a single-connection in-memory database with the full schema
// and the default configuration and industries seeded.
func Open(t *testing.T) *gorm.DB {
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

	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	ctx := context.Background()
	if err := mysql.NewConfigRepository(db).SeedDefaults(ctx); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if err := mysql.NewIndustryRepository(db).SeedDefaults(ctx); err != nil {
		t.Fatalf("seed industries: %v", err)
	}
	return db
}

// CompanyOpt tweaks a seeded company before insert.
type CompanyOpt func(c *company.Company)

func WithRevenue(v int64) CompanyOpt {
	return func(c *company.Company) { c.AnnualRevenue = decimal.NewFromInt(v) }
}

func WithEmployees(n int) CompanyOpt {
	return func(c *company.Company) { c.EmployeeCount = n }
}

// SeedCompany inserts a MANUFACTURING (tier B) company founded 2019-05-01
// with 1,000,000 revenue and 12 employees.
func SeedCompany(t *testing.T, db *gorm.DB, owner, taxID string, opts ...CompanyOpt) *company.Company {
	t.Helper()
	ctx := context.Background()
	ind, err := mysql.NewIndustryRepository(db).GetByCode(ctx, "MANUFACTURING")
	if err != nil {
		t.Fatalf("industry: %v", err)
	}
	founded := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	c := &company.Company{
		CompanyID:     id.NewID32(),
		OwnerID:       owner,
		LegalName:     "Acme " + taxID,
		TaxID:         taxID,
		AnnualRevenue: decimal.NewFromInt(1_000_000),
		EmployeeCount: 12,
		FoundedAt:     &founded,
		IndustryID:    ind.ID,
	}
	for _, o := range opts {
		o(c)
	}
	if err := mysql.NewCompanyRepository(db).Create(ctx, c); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	c.Industry = ind
	return c
}

// SeedDocument attaches one supporting document to c.
func SeedDocument(t *testing.T, db *gorm.DB, c *company.Company) {
	t.Helper()
	d := &company.Document{
		DocumentID:  id.NewID32(),
		CompanyRef:  c.ID,
		Kind:        "FINANCIAL_STATEMENT",
		FileName:    "statement.pdf",
		StorageKey:  "companies/" + c.CompanyID + "/statement.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
		UploadedBy:  c.OwnerID,
	}
	if err := mysql.NewDocumentRepository(db).Create(context.Background(), d); err != nil {
		t.Fatalf("seed document: %v", err)
	}
}
