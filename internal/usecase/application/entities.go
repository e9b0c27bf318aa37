package application

import (
	"time"

	"github.com/shopspring/decimal"

	appDomain "sme-credit-backend/internal/domain/application"
)

type ConfirmInput struct {
	ApplicationID      string
	OwnerID            string
	SelectedAmount     decimal.Decimal
	SelectedTermMonths int
}

type OfferDTO struct {
	Tier                string    `json:"tier"`
	Score               int       `json:"score"`
	InterestRate        string    `json:"interest_rate"`
	MinAmount           string    `json:"min_amount"`
	MaxAmount           string    `json:"max_amount"`
	AllowedTerms        []int     `json:"allowed_terms"`
	CalculationSnapshot any       `json:"calculation_snapshot,omitempty"`
	CalculatedAt        time.Time `json:"calculated_at"`
}

// ApplicationDTO is the borrower view: no internal notes, no audit snapshot.
type ApplicationDTO struct {
	ApplicationID      string                    `json:"application_id"`
	Number             string                    `json:"number"`
	CompanyID          string                    `json:"company_id"`
	Status             string                    `json:"status"`
	Offer              *OfferDTO                 `json:"offer,omitempty"`
	SelectedAmount     *string                   `json:"selected_amount,omitempty"`
	SelectedTermMonths *int                      `json:"selected_term_months,omitempty"`
	ApprovedAmount     *string                   `json:"approved_amount,omitempty"`
	RejectionReason    *string                   `json:"rejection_reason,omitempty"`
	UserNotes          *string                   `json:"user_notes,omitempty"`
	StatusHistory      []appDomain.StatusEntry   `json:"status_history"`
	SubmittedAt        *time.Time                `json:"submitted_at,omitempty"`
	ApprovedAt         *time.Time                `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time                `json:"disbursed_at,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// AdminApplicationDTO adds the administrator-only fields.
type AdminApplicationDTO struct {
	ApplicationDTO
	OwnerID            string     `json:"owner_id"`
	RiskScore          *int       `json:"risk_score,omitempty"`
	InternalNotes      *string    `json:"internal_notes,omitempty"`
	SignatureRequestID *string    `json:"signature_request_id,omitempty"`
	ReviewedBy         *string    `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
}

type PageDTO struct {
	Items    []AdminApplicationDTO `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

func ToDTO(a *appDomain.CreditApplication) *ApplicationDTO {
	dto := &ApplicationDTO{
		ApplicationID:      a.ApplicationID,
		Number:             a.Number,
		Status:             string(a.Status),
		SelectedAmount:     nullString(a.SelectedAmount),
		SelectedTermMonths: a.SelectedTermMonths,
		ApprovedAmount:     nullString(a.ApprovedAmount),
		RejectionReason:    a.RejectionReason,
		UserNotes:          a.UserNotes,
		StatusHistory:      a.StatusHistory.ForBorrower(),
		SubmittedAt:        a.SubmittedAt,
		ApprovedAt:         a.ApprovedAt,
		DisbursedAt:        a.DisbursedAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.Company != nil {
		dto.CompanyID = a.Company.CompanyID
	}
	if a.Offer.Present() {
		dto.Offer = offerDTO(a.Offer, false)
	}
	return dto
}

func ToAdminDTO(a *appDomain.CreditApplication) *AdminApplicationDTO {
	dto := &AdminApplicationDTO{
		ApplicationDTO:     *ToDTO(a),
		OwnerID:            a.OwnerID,
		RiskScore:          a.RiskScore,
		InternalNotes:      a.InternalNotes,
		SignatureRequestID: a.SignatureRequestID,
		ReviewedBy:         a.ReviewedBy,
		ReviewedAt:         a.ReviewedAt,
	}
	dto.StatusHistory = append([]appDomain.StatusEntry{}, a.StatusHistory...)
	if a.Offer.Present() {
		dto.Offer = offerDTO(a.Offer, true)
	}
	return dto
}

func offerDTO(o appDomain.OfferDetails, withSnapshot bool) *OfferDTO {
	dto := &OfferDTO{
		Tier:         string(o.Tier),
		Score:        o.Score,
		InterestRate: o.InterestRate.StringFixed(2),
		MinAmount:    o.MinAmount.StringFixed(2),
		MaxAmount:    o.MaxAmount.StringFixed(2),
		AllowedTerms: append([]int{}, o.AllowedTerms...),
		CalculatedAt: o.CalculationSnapshot.CalculatedAt,
	}
	if withSnapshot {
		dto.CalculationSnapshot = o.CalculationSnapshot
	}
	return dto
}

func nullString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}
