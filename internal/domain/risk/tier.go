// Package risk holds the deterministic scoring engine and the reference
// configuration (tier parameters, system parameters) it is driven by.
package risk

import (
	"fmt"
	"strings"

	"sme-credit-backend/internal/domain/apperr"
)

// Tier is the ordinal risk class, A lowest risk.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierA, TierB, TierC, TierD}

// ParseTier accepts "a".."d" in any case.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown risk tier %q", apperr.ErrValidation, s)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	switch t {
	case TierA, TierB, TierC, TierD:
		return true
	}
	return false
}

// Band is the inclusive score range owned by a tier.
type Band struct {
	Floor   int
	Ceiling int
}

var bands = map[Tier]Band{
	TierA: {Floor: 80, Ceiling: 100},
	TierB: {Floor: 60, Ceiling: 79},
	TierC: {Floor: 30, Ceiling: 59},
	TierD: {Floor: 0, Ceiling: 29},
}

// BandOf returns the score band of t. Unknown tiers get tier D's band.
func BandOf(t Tier) Band {
	if b, ok := bands[t]; ok {
		return b
	}
	return bands[TierD]
}
