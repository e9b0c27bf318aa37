package application

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/pkg/blob"
)

// OfferDetails is the priced offer stored on the application together with
// the audit snapshot it was derived from. The zero value means no offer and
// is stored as NULL.
type OfferDetails struct {
	Tier                risk.Tier       `json:"tier"`
	Score               int             `json:"score"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	MinAmount           decimal.Decimal `json:"min_amount"`
	MaxAmount           decimal.Decimal `json:"max_amount"`
	AllowedTerms        []int           `json:"allowed_terms"`
	CalculationSnapshot risk.Snapshot   `json:"calculation_snapshot"`
}

func NewOfferDetails(o risk.Offer) OfferDetails {
	return OfferDetails{
		Tier:                o.Tier,
		Score:               o.Score,
		InterestRate:        o.InterestRate,
		MinAmount:           o.MinAmount,
		MaxAmount:           o.MaxAmount,
		AllowedTerms:        append([]int(nil), o.AllowedTerms...),
		CalculationSnapshot: o.Snapshot,
	}
}

func (o OfferDetails) Present() bool { return o.Tier != "" }

func (o OfferDetails) AllowsTerm(months int) bool {
	return risk.Terms(o.AllowedTerms).Contains(months)
}

func (o OfferDetails) Value() (driver.Value, error) {
	if !o.Present() {
		return nil, nil
	}
	b, err := blob.Encode(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *OfferDetails) Scan(src any) error {
	var out OfferDetails
	if err := blob.Decode(src, &out); err != nil {
		return err
	}
	*o = out
	return nil
}
