package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

// Product is a catalog entry describing an insurance product offered in a
// category. It is reference data; premiums are not computed from it.
type Product struct {
	ID       uuid.UUID                      `json:"id"`
	Category recommendation.ProductCategory `json:"category"`
	Name     string                         `json:"name"`
	// BaseRate is the monthly rate per dollar of coverage.
	BaseRate    float64   `json:"baseRate"`
	MaxCoverage float64   `json:"maxCoverage"`
	MinAge      int       `json:"minAge"`
	MaxAge      int       `json:"maxAge"`
	TermOptions []int     `json:"termOptions,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RatePerThousand converts BaseRate to the per $1,000 unit the premium
// formula uses.
func (p Product) RatePerThousand() float64 {
	return p.BaseRate * 1000
}

// EligibleAge reports whether age falls inside the product's range.
func (p Product) EligibleAge(age int) bool {
	return age >= p.MinAge && age <= p.MaxAge
}

// OffersTerm reports whether years is one of the product's term options.
func (p Product) OffersTerm(years int) bool {
	for _, option := range p.TermOptions {
		if option == years {
			return true
		}
	}
	return false
}

// DefaultProducts returns the seed catalog.
func DefaultProducts() []Product {
	return []Product{
		{
			Category:    recommendation.TermLife,
			Name:        "FlexTerm Life 20",
			BaseRate:    0.0008,
			MaxCoverage: 2000000,
			MinAge:      18,
			MaxAge:      65,
			TermOptions: []int{10, 20, 30},
			Active:      true,
		},
		{
			Category:    recommendation.WholeLife,
			Name:        "LifeBuilder Whole Life",
			BaseRate:    0.0035,
			MaxCoverage: 1000000,
			MinAge:      18,
			MaxAge:      75,
			Active:      true,
		},
		{
			Category:    recommendation.UniversalLife,
			Name:        "FlexChoice Universal",
			BaseRate:    0.0022,
			MaxCoverage: 1500000,
			MinAge:      18,
			MaxAge:      70,
			Active:      true,
		},
	}
}
