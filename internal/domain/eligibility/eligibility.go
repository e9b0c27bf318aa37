// Package eligibility is the gate that marks a company as not viable for
// underwriting when it exceeds the system-wide size ceilings.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/domain/risk"
)

// Limits are the ceilings a company must not exceed.
type Limits struct {
	MaxAnnualRevenue decimal.Decimal
	MaxEmployeeCount int
}

// LimitsFrom reads the ceilings out of a configuration snapshot.
func LimitsFrom(p risk.Parameters) Limits {
	return Limits{MaxAnnualRevenue: p.MaxAnnualRevenue, MaxEmployeeCount: p.MaxEmployeeCount}
}

type Result struct {
	Exceeds bool     `json:"exceeds"`
	Reasons []string `json:"reasons"`
}

// Reason joins every violation into one line.
func (r Result) Reason() string { return strings.Join(r.Reasons, "; ") }

// Evaluate reports every ceiling the company is above. Values exactly at a
// limit pass.
func Evaluate(annualRevenue decimal.Decimal, employeeCount int, lim Limits) Result {
	var res Result
	if annualRevenue.GreaterThan(lim.MaxAnnualRevenue) {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"annual revenue %s exceeds the maximum of %s", annualRevenue.StringFixed(2), lim.MaxAnnualRevenue.StringFixed(2)))
	}
	if employeeCount > lim.MaxEmployeeCount {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"employee count %d exceeds the maximum of %d", employeeCount, lim.MaxEmployeeCount))
	}
	res.Exceeds = len(res.Reasons) > 0
	return res
}
