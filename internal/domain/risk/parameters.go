package risk

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/domain/apperr"
)

// ErrMissingTierConfig is returned when a computed tier has no configuration row.
// Unlike system keys there is no fallback.
var ErrMissingTierConfig = apperr.New(apperr.ErrConfiguration, "missing risk tier config")

// TierTerms are the financial parameters of one tier.
type TierTerms struct {
	Spread       decimal.Decimal `json:"spread"`
	Factor       decimal.Decimal `json:"factor"`
	AllowedTerms []int           `json:"allowed_terms"`
}

// Parameters is an immutable snapshot of tier and system configuration taken
// once per request.
type Parameters struct {
	BaseRate         decimal.Decimal    `json:"base_rate"`
	AbsoluteMinLoan  decimal.Decimal    `json:"absolute_min_loan"`
	AbsoluteMaxLoan  decimal.Decimal    `json:"absolute_max_loan"`
	RoundTo          decimal.Decimal    `json:"round_to"`
	MaxAnnualRevenue decimal.Decimal    `json:"max_annual_revenue"`
	MaxEmployeeCount int                `json:"max_employee_count"`
	Tiers            map[Tier]TierTerms `json:"tiers"`
}

// ConfigProvider supplies the current Parameters snapshot.
type ConfigProvider interface {
	Parameters(ctx context.Context) (Parameters, error)
}

// ConfigRepository is the persistence side of the reference configuration.
type ConfigRepository interface {
	ListTierConfigs(ctx context.Context) ([]RiskTierConfig, error)
	ListSystemConfigs(ctx context.Context) ([]SystemConfig, error)
	SeedDefaults(ctx context.Context) error
}

// FromRows builds Parameters, filling missing system keys from SystemDefaults.
func FromRows(tiers []RiskTierConfig, sys []SystemConfig) Parameters {
	values := make(map[string]decimal.Decimal, len(SystemDefaults))
	for k, v := range SystemDefaults {
		values[k] = v
	}
	for _, s := range sys {
		values[s.Key] = s.Value
	}

	p := Parameters{
		BaseRate:         values[KeyBaseRate],
		AbsoluteMinLoan:  values[KeyAbsoluteMinLoan],
		AbsoluteMaxLoan:  values[KeyAbsoluteMaxLoan],
		RoundTo:          values[KeyRoundTo],
		MaxAnnualRevenue: values[KeyMaxAnnualRevenue],
		MaxEmployeeCount: int(values[KeyMaxEmployeeCount].IntPart()),
		Tiers:            make(map[Tier]TierTerms, len(tiers)),
	}
	for _, t := range tiers {
		p.Tiers[t.Tier] = TierTerms{
			Spread:       t.Spread,
			Factor:       t.Factor,
			AllowedTerms: append([]int(nil), t.AllowedTerms...),
		}
	}
	return p
}

// DefaultParameters is FromRows over the seed rows.
func DefaultParameters() Parameters {
	return FromRows(DefaultTierConfigs(), nil)
}

// TierTerms returns the configuration of t or ErrMissingTierConfig.
func (p Parameters) TierTerms(t Tier) (TierTerms, error) {
	tt, ok := p.Tiers[t]
	if !ok {
		return TierTerms{}, fmt.Errorf("%w: tier %s", ErrMissingTierConfig, t)
	}
	return tt, nil
}

// Validate rejects snapshots the engine cannot work with.
func (p Parameters) Validate() error {
	if p.AbsoluteMinLoan.IsNegative() || p.AbsoluteMaxLoan.LessThan(p.AbsoluteMinLoan) {
		return fmt.Errorf("%w: %s=%s must not exceed %s=%s", apperr.ErrConfiguration,
			KeyAbsoluteMinLoan, p.AbsoluteMinLoan, KeyAbsoluteMaxLoan, p.AbsoluteMaxLoan)
	}
	if p.RoundTo.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", apperr.ErrConfiguration, KeyRoundTo)
	}
	return nil
}
