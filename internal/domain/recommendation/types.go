package recommendation

import (
	"time"

	"github.com/google/uuid"
)

// RiskTolerance is the applicant's stated appetite for risk.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Valid reports whether r is one of the known tolerances.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ProductCategory identifies a family of life insurance products.
type ProductCategory string

const (
	TermLife      ProductCategory = "term"
	WholeLife     ProductCategory = "whole"
	UniversalLife ProductCategory = "universal"
)

// Categories lists every known category in display order.
func Categories() []ProductCategory {
	return []ProductCategory{TermLife, WholeLife, UniversalLife}
}

// ParseCategory maps a code such as "term" to its category.
func ParseCategory(code string) (ProductCategory, bool) {
	for _, c := range Categories() {
		if string(c) == code {
			return c, true
		}
	}
	return "", false
}

// DisplayName returns the human readable product type.
func (c ProductCategory) DisplayName() string {
	switch c {
	case TermLife:
		return "Term Life"
	case WholeLife:
		return "Whole Life"
	case UniversalLife:
		return "Universal Life"
	default:
		return string(c)
	}
}

// SupportsTerm reports whether policies in the category run for a finite term.
func (c ProductCategory) SupportsTerm() bool {
	return c == TermLife
}

// UserProfile is the validated applicant input.
type UserProfile struct {
	Age           int           `json:"age"`
	Income        float64       `json:"income"`
	Dependents    int           `json:"dependents"`
	RiskTolerance RiskTolerance `json:"riskTolerance"`
}

// Draft is a computed recommendation that has not been stored yet.
type Draft struct {
	Category       ProductCategory `json:"productCategory"`
	TermYears      *int            `json:"termYears"`
	CoverageAmount float64         `json:"coverageAmount"`
	MonthlyPremium float64         `json:"monthlyPremium"`
	Explanation    string          `json:"explanation"`
}

// Recommendation is a stored draft with its generated identity.
type Recommendation struct {
	ID uuid.UUID `json:"id"`
	Draft
	CreatedAt time.Time `json:"createdAt"`
}

// Quote is the engine output: the draft plus how it was reached.
type Quote struct {
	Draft
	RuleID string
	// DefaultRateApplied is set when the category had no configured base rate.
	DefaultRateApplied bool
}

// Submission links the applicant input to the recommendation it produced.
type Submission struct {
	Profile          UserProfile
	RecommendationID uuid.UUID
}

func termPtr(years int) *int {
	return &years
}
