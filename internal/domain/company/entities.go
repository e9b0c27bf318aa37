package company

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sme-credit-backend/internal/domain/risk"
)

// Table: industries
type Industry struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string    `gorm:"column:code;size:32;not null;uniqueIndex:ux_industries_code" json:"code"`
	Name        string    `gorm:"column:name;size:128;not null" json:"name"`
	RiskTier    risk.Tier `gorm:"column:risk_tier;size:1;not null" json:"risk_tier"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Industry) TableName() string { return "industries" }

// DefaultIndustries is the seed set installed when the table is empty.
func DefaultIndustries() []Industry {
	return []Industry{
		{Code: "SOFTWARE", Name: "Software & IT services", RiskTier: risk.TierA, Description: "Recurring revenue, low capital intensity"},
		{Code: "HEALTH", Name: "Healthcare services", RiskTier: risk.TierA, Description: "Stable demand"},
		{Code: "MANUFACTURING", Name: "Manufacturing", RiskTier: risk.TierB, Description: "Asset-backed, cyclical demand"},
		{Code: "RETAIL", Name: "Retail", RiskTier: risk.TierB, Description: "Thin margins, seasonal"},
		{Code: "CONSTRUCTION", Name: "Construction", RiskTier: risk.TierC, Description: "Project-based cash flow"},
		{Code: "HOSPITALITY", Name: "Hospitality & food service", RiskTier: risk.TierC, Description: "High churn"},
		{Code: "AGRICULTURE", Name: "Agriculture", RiskTier: risk.TierD, Description: "Weather and commodity exposure"},
	}
}

// Table: companies
//
// ActiveTaxID and ActiveEmail mirror TaxID and Email while the company is not
// deleted. Their unique indexes give uniqueness among live companies only,
// since NULLs never collide.
type Company struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CompanyID     string          `gorm:"column:company_id;type:char(32);not null;uniqueIndex:ux_companies_company_id" json:"company_id"`
	OwnerID       string          `gorm:"column:owner_id;type:char(32);not null;index:idx_companies_owner" json:"owner_id"`
	LegalName     string          `gorm:"column:legal_name;size:255;not null" json:"legal_name"`
	TaxID         string          `gorm:"column:tax_id;size:32;not null" json:"tax_id"`
	ActiveTaxID   *string         `gorm:"column:active_tax_id;size:32;uniqueIndex:ux_companies_active_tax_id" json:"-"`
	Email         *string         `gorm:"column:email;size:255" json:"email,omitempty"`
	ActiveEmail   *string         `gorm:"column:active_email;size:255;uniqueIndex:ux_companies_active_email" json:"-"`
	AnnualRevenue decimal.Decimal `gorm:"column:annual_revenue;type:decimal(18,2);not null" json:"annual_revenue"`
	EmployeeCount int             `gorm:"column:employee_count;not null" json:"employee_count"`
	FoundedAt     *time.Time      `gorm:"column:founded_at;type:date" json:"founded_at,omitempty"`
	IndustryID    uint64          `gorm:"column:industry_id;not null;index" json:"-"`
	Industry      *Industry       `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy     *string         `gorm:"column:deleted_by;type:char(32)" json:"-"`
}

func (Company) TableName() string { return "companies" }

// NormalizeTaxID uppercases and strips spaces and dashes.
func NormalizeTaxID(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", ".", "").Replace(s)
}

// NormalizeEmail lowercases; blank becomes nil.
func NormalizeEmail(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}

// ClaimKeys marks the tax id and email as taken.
func (c *Company) ClaimKeys() {
	tax := c.TaxID
	c.ActiveTaxID = &tax
	if c.Email != nil {
		email := *c.Email
		c.ActiveEmail = &email
	} else {
		c.ActiveEmail = nil
	}
}

// ReleaseKeys frees the tax id and email for reuse.
func (c *Company) ReleaseKeys() {
	c.ActiveTaxID = nil
	c.ActiveEmail = nil
}

// Profile is the scoring input of the company. Without a loaded industry the
// tier is empty and scores as unknown.
func (c *Company) Profile() risk.CompanyProfile {
	p := risk.CompanyProfile{
		AnnualRevenue: c.AnnualRevenue,
		EmployeeCount: c.EmployeeCount,
		FoundedAt:     c.FoundedAt,
	}
	if c.Industry != nil {
		p.IndustryTier = c.Industry.RiskTier
	}
	return p
}

// Table: company_documents
//
// Only metadata; the file itself lives in object storage.
type Document struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DocumentID  string         `gorm:"column:document_id;type:char(32);not null;uniqueIndex:ux_company_documents_document_id" json:"document_id"`
	CompanyRef  uint64         `gorm:"column:company_id;not null;index:idx_company_documents_company" json:"-"`
	Company     *Company       `gorm:"foreignKey:CompanyRef;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Kind        string         `gorm:"column:kind;size:64;not null" json:"kind"`
	FileName    string         `gorm:"column:file_name;size:255;not null" json:"file_name"`
	StorageKey  string         `gorm:"column:storage_key;type:text;not null" json:"storage_key"`
	ContentType string         `gorm:"column:content_type;size:128" json:"content_type"`
	SizeBytes   int64          `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedBy  string         `gorm:"column:uploaded_by;type:char(32);not null" json:"uploaded_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Document) TableName() string { return "company_documents" }
