package company

import (
	"testing"

	"github.com/shopspring/decimal"

	"sme-credit-backend/internal/domain/risk"
)

func TestNormalizeTaxID(t *testing.T) {
	tests := map[string]string{
		" abc-123.45 ": "ABC12345",
		"X Y Z":        "XYZ",
		"":             "",
	}
	for in, want := range tests {
		if got := NormalizeTaxID(in); got != want {
			t.Errorf("NormalizeTaxID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	blank := "   "
	if NormalizeEmail(nil) != nil || NormalizeEmail(&blank) != nil {
		t.Fatal("blank email should normalize to nil")
	}
	raw := " Owner@Example.COM "
	if got := NormalizeEmail(&raw); got == nil || *got != "owner@example.com" {
		t.Fatalf("got %v", got)
	}
}

func TestClaimAndReleaseKeys(t *testing.T) {
	email := "a@b.co"
	c := &Company{TaxID: "T1", Email: &email}
	c.ClaimKeys()
	if c.ActiveTaxID == nil || *c.ActiveTaxID != "T1" || c.ActiveEmail == nil || *c.ActiveEmail != email {
		t.Fatalf("keys not claimed: %+v", c)
	}
	// copies, not aliases
	*c.ActiveTaxID = "changed"
	if c.TaxID != "T1" {
		t.Fatal("ActiveTaxID aliases TaxID")
	}
	c.ReleaseKeys()
	if c.ActiveTaxID != nil || c.ActiveEmail != nil {
		t.Fatalf("keys not released: %+v", c)
	}
}

func TestProfile(t *testing.T) {
	c := &Company{AnnualRevenue: decimal.NewFromInt(10), EmployeeCount: 2}
	if p := c.Profile(); p.IndustryTier != "" {
		t.Fatalf("tier without industry = %q", p.IndustryTier)
	}
	c.Industry = &Industry{RiskTier: risk.TierC}
	p := c.Profile()
	if p.IndustryTier != risk.TierC || p.EmployeeCount != 2 || !p.AnnualRevenue.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected profile %+v", p)
	}
}
