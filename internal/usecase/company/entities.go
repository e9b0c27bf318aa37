package company

import (
	"time"

	"github.com/shopspring/decimal"

	companyDomain "sme-credit-backend/internal/domain/company"
)

type CreateCompanyInput struct {
	LegalName     string
	TaxID         string
	Email         *string
	AnnualRevenue decimal.Decimal
	EmployeeCount int
	FoundedAt     *time.Time
	IndustryCode  string
}

type AttachDocumentInput struct {
	Kind        string
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

type EligibilityDTO struct {
	Exceeds bool     `json:"exceeds"`
	Reasons []string `json:"reasons,omitempty"`
	// NotApplicableNumber is the terminal application recorded for an
	// oversized company, when recording it succeeded.
	NotApplicableNumber string `json:"not_applicable_number,omitempty"`
}

type CompanyDTO struct {
	CompanyID     string          `json:"company_id"`
	LegalName     string          `json:"legal_name"`
	TaxID         string          `json:"tax_id"`
	Email         *string         `json:"email,omitempty"`
	AnnualRevenue string          `json:"annual_revenue"`
	EmployeeCount int             `json:"employee_count"`
	FoundedAt     *string         `json:"founded_at,omitempty"`
	Industry      string          `json:"industry"`
	RiskTier      string          `json:"risk_tier"`
	CreatedAt     time.Time       `json:"created_at"`
	Eligibility   *EligibilityDTO `json:"eligibility,omitempty"`
}

type DocumentDTO struct {
	DocumentID  string    `json:"document_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	Total       int64     `json:"total_documents"`
}

func toDTO(c *companyDomain.Company) *CompanyDTO {
	dto := &CompanyDTO{
		CompanyID:     c.CompanyID,
		LegalName:     c.LegalName,
		TaxID:         c.TaxID,
		Email:         c.Email,
		AnnualRevenue: c.AnnualRevenue.StringFixed(2),
		EmployeeCount: c.EmployeeCount,
		CreatedAt:     c.CreatedAt,
	}
	if c.FoundedAt != nil {
		s := c.FoundedAt.Format(time.DateOnly)
		dto.FoundedAt = &s
	}
	if c.Industry != nil {
		dto.Industry = c.Industry.Code
		dto.RiskTier = string(c.Industry.RiskTier)
	}
	return dto
}
