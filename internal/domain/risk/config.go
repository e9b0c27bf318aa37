package risk

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"sme-credit-backend/pkg/blob"
)

// System config keys.
const (
	KeyBaseRate         = "BASE_RATE"
	KeyAbsoluteMinLoan  = "ABSOLUTE_MIN_LOAN"
	KeyAbsoluteMaxLoan  = "ABSOLUTE_MAX_LOAN"
	KeyRoundTo          = "ROUND_TO"
	KeyMaxAnnualRevenue = "MAX_ANNUAL_REVENUE"
	KeyMaxEmployeeCount = "MAX_EMPLOYEE_COUNT"
)

// SystemDefaults are used for any key missing from the store.
var SystemDefaults = map[string]decimal.Decimal{
	KeyBaseRate:         decimal.RequireFromString("3.5"),
	KeyAbsoluteMinLoan:  decimal.NewFromInt(1_000),
	KeyAbsoluteMaxLoan:  decimal.NewFromInt(50_000_000),
	KeyRoundTo:          decimal.NewFromInt(1_000),
	KeyMaxAnnualRevenue: decimal.NewFromInt(50_000_000),
	KeyMaxEmployeeCount: decimal.NewFromInt(250),
}

// Terms is an ordered set of permitted term lengths in months.
type Terms []int

func (t Terms) Value() (driver.Value, error) {
	if t == nil {
		t = Terms{}
	}
	b, err := blob.Encode([]int(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Terms) Scan(src any) error {
	var out []int
	if err := blob.Decode(src, &out); err != nil {
		return err
	}
	*t = out
	return nil
}

// Contains reports whether months is a permitted term.
func (t Terms) Contains(months int) bool {
	for _, m := range t {
		if m == months {
			return true
		}
	}
	return false
}

// Table: risk_tier_configs
type RiskTierConfig struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	Tier         Tier            `gorm:"column:tier;size:1;not null;uniqueIndex:ux_risk_tier_configs_tier" json:"tier"`
	Spread       decimal.Decimal `gorm:"column:spread;type:decimal(6,3);not null" json:"spread"`
	Factor       decimal.Decimal `gorm:"column:factor;type:decimal(6,4);not null" json:"factor"`
	AllowedTerms Terms           `gorm:"column:allowed_terms;type:text;not null" json:"allowed_terms"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (RiskTierConfig) TableName() string { return "risk_tier_configs" }

// Table: system_configs
type SystemConfig struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	Key         string          `gorm:"column:config_key;size:64;not null;uniqueIndex:ux_system_configs_key" json:"key"`
	Value       decimal.Decimal `gorm:"column:config_value;type:decimal(20,4);not null" json:"value"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (SystemConfig) TableName() string { return "system_configs" }

// DefaultTierConfigs is the seed set installed when the store is empty.
func DefaultTierConfigs() []RiskTierConfig {
	return []RiskTierConfig{
		{Tier: TierA, Spread: decimal.RequireFromString("1.5"), Factor: decimal.RequireFromString("0.40"), AllowedTerms: Terms{6, 12, 24, 36, 48, 60}},
		{Tier: TierB, Spread: decimal.RequireFromString("3.0"), Factor: decimal.RequireFromString("0.30"), AllowedTerms: Terms{6, 12, 24, 36, 48}},
		{Tier: TierC, Spread: decimal.RequireFromString("5.0"), Factor: decimal.RequireFromString("0.20"), AllowedTerms: Terms{6, 12, 24, 36}},
		{Tier: TierD, Spread: decimal.RequireFromString("8.0"), Factor: decimal.RequireFromString("0.10"), AllowedTerms: Terms{6, 12}},
	}
}

// DefaultSystemConfigs mirrors SystemDefaults as rows.
func DefaultSystemConfigs() []SystemConfig {
	keys := []string{KeyBaseRate, KeyAbsoluteMinLoan, KeyAbsoluteMaxLoan, KeyRoundTo, KeyMaxAnnualRevenue, KeyMaxEmployeeCount}
	out := make([]SystemConfig, 0, len(keys))
	for _, k := range keys {
		out = append(out, SystemConfig{Key: k, Value: SystemDefaults[k]})
	}
	return out
}
