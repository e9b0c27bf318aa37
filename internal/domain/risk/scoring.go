package risk

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	minRate         = decimal.NewFromInt(3)
	maxRate         = decimal.NewFromInt(25)
	maxDiscount     = decimal.RequireFromString("0.5")
	minFromRevenue  = decimal.RequireFromString("0.05")
	minFromMaxShare = decimal.RequireFromString("0.1")

	// degraded offer ceiling when revenue is not reported
	degradedMaxAmount = decimal.NewFromInt(5_000)
	degradedTerms     = []int{6, 12}
)

// DegradedNote is recorded in the snapshot of a zero-revenue offer.
const DegradedNote = "annual revenue not reported: scoring bypassed, tier D conditions applied"

// CompanyProfile is the scoring input taken from a company.
type CompanyProfile struct {
	AnnualRevenue decimal.Decimal
	EmployeeCount int
	FoundedAt     *time.Time
	IndustryTier  Tier
}

// LoanLimits bounds and rounds computed amounts.
type LoanLimits struct {
	AbsoluteMin decimal.Decimal
	AbsoluteMax decimal.Decimal
	RoundTo     decimal.Decimal
}

// Offer is the priced result of Calculate.
type Offer struct {
	Tier         Tier
	Score        int
	InterestRate decimal.Decimal
	MinAmount    decimal.Decimal
	MaxAmount    decimal.Decimal
	AllowedTerms []int
	Snapshot     Snapshot
}

// Snapshot records every input and intermediate value behind an offer.
type Snapshot struct {
	AnnualRevenue           decimal.Decimal `json:"annual_revenue"`
	EmployeeCount           int             `json:"employee_count"`
	FoundedAt               *time.Time      `json:"founded_at,omitempty"`
	AgeYears                *int            `json:"age_years"`
	RevenuePerEmployee      decimal.Decimal `json:"revenue_per_employee"`
	IndustryTier            Tier            `json:"industry_tier"`
	AgeScore                int             `json:"age_score"`
	RevenueScore            int             `json:"revenue_score"`
	RevenuePerEmployeeScore int             `json:"revenue_per_employee_score"`
	RiskScore               int             `json:"risk_score"`
	IndustryAdjustment      int             `json:"industry_adjustment"`
	FinalScore              int             `json:"final_score"`
	Tier                    Tier            `json:"tier"`
	BaseRate                decimal.Decimal `json:"base_rate"`
	Spread                  decimal.Decimal `json:"spread"`
	Factor                  decimal.Decimal `json:"factor"`
	IntraTierDiscount       decimal.Decimal `json:"intra_tier_discount"`
	InterestRate            decimal.Decimal `json:"interest_rate"`
	AbsoluteMinLoan         decimal.Decimal `json:"absolute_min_loan"`
	AbsoluteMaxLoan         decimal.Decimal `json:"absolute_max_loan"`
	RoundTo                 decimal.Decimal `json:"round_to"`
	MinAmount               decimal.Decimal `json:"min_amount"`
	MaxAmount               decimal.Decimal `json:"max_amount"`
	AllowedTerms            []int           `json:"allowed_terms"`
	Degraded                bool            `json:"degraded"`
	Note                    string          `json:"note,omitempty"`
	CalculatedAt            time.Time       `json:"calculated_at"`
}

// AgeYears returns whole years between founded and now, floored. A nil or zero
// date reports ok=false; a future date yields 0.
func AgeYears(founded *time.Time, now time.Time) (years int, ok bool) {
	if founded == nil || founded.IsZero() {
		return 0, false
	}
	f := founded.UTC()
	n := now.UTC()
	years = n.Year() - f.Year()
	if n.Month() < f.Month() || (n.Month() == f.Month() && n.Day() < f.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, true
}

func AgeScore(years int) int {
	switch {
	case years < 1:
		return 0
	case years < 3:
		return 10
	case years < 5:
		return 20
	default:
		return 30
	}
}

var revenueBuckets = []struct {
	below decimal.Decimal
	score int
}{
	{decimal.NewFromInt(100_000), 0},
	{decimal.NewFromInt(500_000), 10},
	{decimal.NewFromInt(1_000_000), 20},
	{decimal.NewFromInt(5_000_000), 30},
}

func RevenueScore(revenue decimal.Decimal) int {
	for _, b := range revenueBuckets {
		if revenue.LessThan(b.below) {
			return b.score
		}
	}
	return 40
}

var perEmployeeBuckets = []struct {
	below decimal.Decimal
	score int
}{
	{decimal.NewFromInt(50_000), 0},
	{decimal.NewFromInt(100_000), 10},
	{decimal.NewFromInt(200_000), 20},
}

func RevenuePerEmployeeScore(rpe decimal.Decimal) int {
	for _, b := range perEmployeeBuckets {
		if rpe.LessThan(b.below) {
			return b.score
		}
	}
	return 30
}

// RevenuePerEmployee treats a missing headcount as a single employee.
func RevenuePerEmployee(revenue decimal.Decimal, employees int) decimal.Decimal {
	if employees <= 0 {
		return revenue
	}
	return revenue.Div(decimal.NewFromInt(int64(employees))).Round(2)
}

// RiskScore sums the age, revenue and revenue-per-employee sub-scores (max 100).
func RiskScore(revenue decimal.Decimal, ageYears int, revenuePerEmployee decimal.Decimal) int {
	return AgeScore(ageYears) + RevenueScore(revenue) + RevenuePerEmployeeScore(revenuePerEmployee)
}

func IndustryAdjustment(t Tier) int {
	switch t {
	case TierA:
		return 10
	case TierB:
		return 0
	case TierC:
		return -10
	case TierD:
		return -20
	default:
		return -10
	}
}

// FinalScore clamps riskScore+adjustment into [0,100].
func FinalScore(riskScore, adjustment int) int {
	s := riskScore + adjustment
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func TierFromScore(score int) Tier {
	switch {
	case score >= 80:
		return TierA
	case score >= 60:
		return TierB
	case score >= 30:
		return TierC
	default:
		return TierD
	}
}

// InterestRate is baseRate+spread minus an intra-tier discount of up to 0.5
// points, clamped to [3,25] and rounded to 2 decimals.
func InterestRate(baseRate decimal.Decimal, tier Tier, cfg TierTerms, score int) decimal.Decimal {
	rate, _ := interestRate(baseRate, tier, cfg, score)
	return rate
}

func interestRate(baseRate decimal.Decimal, tier Tier, cfg TierTerms, score int) (rate, discount decimal.Decimal) {
	band := BandOf(tier)
	pos := decimal.NewFromInt(int64(score - band.Floor)).Div(decimal.NewFromInt(int64(band.Ceiling - band.Floor)))
	discount = clamp(pos.Mul(maxDiscount), decimal.Zero, maxDiscount)
	rate = clamp(baseRate.Add(cfg.Spread).Sub(discount), minRate, maxRate).Round(2)
	return rate, discount
}

// RoundToStep rounds half away from zero to the nearest multiple of step.
// A non-positive step leaves x unchanged.
func RoundToStep(x, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return x
	}
	return x.Div(step).Round(0).Mul(step)
}

// LoanCaps derives the offered amount range from revenue and the tier factor.
func LoanCaps(cfg TierTerms, revenue decimal.Decimal, lim LoanLimits) (minAmount, maxAmount decimal.Decimal) {
	maxAmount = clamp(RoundToStep(revenue.Mul(cfg.Factor), lim.RoundTo), lim.AbsoluteMin, lim.AbsoluteMax)
	raw := decimal.Min(revenue.Mul(minFromRevenue), maxAmount.Mul(minFromMaxShare))
	minAmount = clamp(RoundToStep(raw, lim.RoundTo), lim.AbsoluteMin, maxAmount)
	return minAmount, maxAmount
}

// Calculate prices an offer for profile. It fails only when the tier the
// profile lands in has no configuration.
func Calculate(profile CompanyProfile, params Parameters, now time.Time) (Offer, error) {
	lim := LoanLimits{AbsoluteMin: params.AbsoluteMinLoan, AbsoluteMax: params.AbsoluteMaxLoan, RoundTo: params.RoundTo}
	snap := Snapshot{
		AnnualRevenue:   profile.AnnualRevenue,
		EmployeeCount:   profile.EmployeeCount,
		FoundedAt:       profile.FoundedAt,
		IndustryTier:    profile.IndustryTier,
		BaseRate:        params.BaseRate,
		AbsoluteMinLoan: params.AbsoluteMinLoan,
		AbsoluteMaxLoan: params.AbsoluteMaxLoan,
		RoundTo:         params.RoundTo,
		CalculatedAt:    now.UTC(),
	}
	if age, ok := AgeYears(profile.FoundedAt, now); ok {
		snap.AgeYears = &age
	}

	if !profile.AnnualRevenue.IsPositive() {
		return degradedOffer(snap, params, lim)
	}

	age := 0
	if snap.AgeYears != nil {
		age = *snap.AgeYears
	}
	snap.RevenuePerEmployee = RevenuePerEmployee(profile.AnnualRevenue, profile.EmployeeCount)
	snap.AgeScore = AgeScore(age)
	snap.RevenueScore = RevenueScore(profile.AnnualRevenue)
	snap.RevenuePerEmployeeScore = RevenuePerEmployeeScore(snap.RevenuePerEmployee)
	snap.RiskScore = snap.AgeScore + snap.RevenueScore + snap.RevenuePerEmployeeScore
	snap.IndustryAdjustment = IndustryAdjustment(profile.IndustryTier)
	snap.FinalScore = FinalScore(snap.RiskScore, snap.IndustryAdjustment)
	snap.Tier = TierFromScore(snap.FinalScore)

	cfg, err := params.TierTerms(snap.Tier)
	if err != nil {
		return Offer{}, err
	}
	snap.Spread = cfg.Spread
	snap.Factor = cfg.Factor
	snap.InterestRate, snap.IntraTierDiscount = interestRate(params.BaseRate, snap.Tier, cfg, snap.FinalScore)
	snap.MinAmount, snap.MaxAmount = LoanCaps(cfg, profile.AnnualRevenue, lim)
	snap.AllowedTerms = append([]int(nil), cfg.AllowedTerms...)

	return offerFrom(snap), nil
}

func degradedOffer(snap Snapshot, params Parameters, lim LoanLimits) (Offer, error) {
	cfg, err := params.TierTerms(TierD)
	if err != nil {
		return Offer{}, err
	}
	snap.Degraded = true
	snap.Note = DegradedNote
	snap.Tier = TierD
	snap.Spread = cfg.Spread
	snap.Factor = cfg.Factor
	snap.IntraTierDiscount = decimal.Zero
	snap.InterestRate = clamp(params.BaseRate.Add(cfg.Spread), minRate, maxRate).Round(2)
	snap.MinAmount = lim.AbsoluteMin
	snap.MaxAmount = decimal.Max(degradedMaxAmount, lim.AbsoluteMin)
	snap.AllowedTerms = append([]int(nil), degradedTerms...)
	return offerFrom(snap), nil
}

func offerFrom(snap Snapshot) Offer {
	return Offer{
		Tier:         snap.Tier,
		Score:        snap.FinalScore,
		InterestRate: snap.InterestRate,
		MinAmount:    snap.MinAmount,
		MaxAmount:    snap.MaxAmount,
		AllowedTerms: append([]int(nil), snap.AllowedTerms...),
		Snapshot:     snap,
	}
}

func clamp(x, lo, hi decimal.Decimal) decimal.Decimal {
	if x.LessThan(lo) {
		return lo
	}
	if x.GreaterThan(hi) {
		return hi
	}
	return x
}
