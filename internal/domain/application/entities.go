package application

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sme-credit-backend/internal/domain/company"
	"sme-credit-backend/internal/domain/risk"
)

const (
	// SystemActor is recorded for changes nobody initiated by hand.
	SystemActor = "system"

	initialReason   = "Oferta generada automáticamente"
	confirmedReason = "offer terms confirmed by applicant"
	defaultReason   = "updated by administrator"
)

// Table: credit_applications
//
// ActiveCompanyID equals CompanyRef while Status is active and is NULL
// otherwise. Its unique index is what keeps a company to one active
// application under concurrent inserts.
type CreditApplication struct {
	ID                 uint64              `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID      string              `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_credit_applications_application_id" json:"application_id"`
	Number             string              `gorm:"column:number;size:32;not null;uniqueIndex:ux_credit_applications_number" json:"number"`
	CompanyRef         uint64              `gorm:"column:company_id;not null;index:idx_credit_applications_company" json:"-"`
	Company            *company.Company    `gorm:"foreignKey:CompanyRef;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	OwnerID            string              `gorm:"column:owner_id;type:char(32);not null;index:idx_credit_applications_owner" json:"owner_id"`
	ActiveCompanyID    *uint64             `gorm:"column:active_company_id;uniqueIndex:ux_credit_applications_active_company" json:"-"`
	Status             Status              `gorm:"column:status;size:24;not null;index:idx_credit_applications_status" json:"status"`
	Offer              OfferDetails        `gorm:"column:offer_details;type:text" json:"offer_details"`
	SelectedAmount     decimal.NullDecimal `gorm:"column:selected_amount;type:decimal(18,2)" json:"selected_amount"`
	SelectedTermMonths *int                `gorm:"column:selected_term_months" json:"selected_term_months"`
	ApprovedAmount     decimal.NullDecimal `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	RiskScore          *int                `gorm:"column:risk_score" json:"risk_score"`
	RejectionReason    *string             `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	InternalNotes      *string             `gorm:"column:internal_notes;type:text" json:"internal_notes"`
	UserNotes          *string             `gorm:"column:user_notes;type:text" json:"user_notes"`
	StatusHistory      StatusHistory       `gorm:"column:status_history;type:text;not null" json:"status_history"`
	SignatureRequestID *string             `gorm:"column:signature_request_id;size:64" json:"signature_request_id"`
	ReviewedBy         *string             `gorm:"column:reviewed_by;size:64" json:"reviewed_by"`
	ReviewedAt         *time.Time          `gorm:"column:reviewed_at" json:"reviewed_at"`
	SubmittedAt        *time.Time          `gorm:"column:submitted_at" json:"submitted_at"`
	ApprovedAt         *time.Time          `gorm:"column:approved_at" json:"approved_at"`
	DisbursedAt        *time.Time          `gorm:"column:disbursed_at" json:"disbursed_at"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime;index:idx_credit_applications_created" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"column:deleted_at;index" json:"-"`
}

func (CreditApplication) TableName() string { return "credit_applications" }

// NewOffered builds an application in APPLYING carrying offer.
func NewOffered(c *company.Company, applicationID, number string, offer risk.Offer, now time.Time) *CreditApplication {
	now = now.UTC()
	a := &CreditApplication{
		ApplicationID: applicationID,
		Number:        number,
		CompanyRef:    c.ID,
		Company:       c,
		OwnerID:       c.OwnerID,
		Status:        StatusApplying,
		Offer:         NewOfferDetails(offer),
		StatusHistory: StatusHistory{}.Append(StatusEntry{
			Status: StatusApplying, At: now, ChangedBy: SystemActor, Reason: initialReason,
		}),
	}
	a.syncActiveSlot()
	return a
}

// NewNotApplicable builds the terminal record left by the eligibility gate.
func NewNotApplicable(c *company.Company, applicationID, number, reason string, now time.Time) *CreditApplication {
	now = now.UTC()
	r := reason
	a := &CreditApplication{
		ApplicationID:   applicationID,
		Number:          number,
		CompanyRef:      c.ID,
		Company:         c,
		OwnerID:         c.OwnerID,
		Status:          StatusNotApplicable,
		RejectionReason: &r,
		StatusHistory: StatusHistory{}.Append(StatusEntry{
			Status: StatusNotApplicable, At: now, ChangedBy: SystemActor, Reason: reason,
		}),
	}
	a.syncActiveSlot()
	return a
}

func (a *CreditApplication) syncActiveSlot() {
	if a.Status.IsActive() {
		id := a.CompanyRef
		a.ActiveCompanyID = &id
		return
	}
	a.ActiveCompanyID = nil
}
