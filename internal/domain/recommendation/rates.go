package recommendation

import "math"

// AgeBand applies Factor to applicants younger than Below.
type AgeBand struct {
	Below  int
	Factor float64
}

// RateTable is the premium configuration: base monthly rates per $1,000 of
// coverage, the age step function and the term adjustments.
type RateTable struct {
	BaseRates       map[ProductCategory]float64
	DefaultBaseRate float64
	// AgeBands must be sorted by Below ascending.
	AgeBands          []AgeBand
	OldestAgeFactor   float64
	TermFactors       map[int]float64
	DefaultTermFactor float64
}

// DefaultRateTable returns the built-in rates.
func DefaultRateTable() RateTable {
	return RateTable{
		BaseRates: map[ProductCategory]float64{
			TermLife:      0.8,
			WholeLife:     3.5,
			UniversalLife: 2.2,
		},
		DefaultBaseRate: 1.0,
		AgeBands: []AgeBand{
			{Below: 30, Factor: 0.8},
			{Below: 40, Factor: 1.0},
			{Below: 50, Factor: 1.3},
		},
		OldestAgeFactor: 1.8,
		TermFactors: map[int]float64{
			20: 1.0,
			30: 1.1,
		},
		DefaultTermFactor: 1.0,
	}
}

// BaseRate returns the rate for the category. ok is false when the table
// has no entry and the default rate was used instead.
func (t RateTable) BaseRate(category ProductCategory) (rate float64, ok bool) {
	if rate, ok := t.BaseRates[category]; ok {
		return rate, true
	}
	return t.DefaultBaseRate, false
}

// AgeFactor evaluates the age step function.
func (t RateTable) AgeFactor(age int) float64 {
	for _, band := range t.AgeBands {
		if age < band.Below {
			return band.Factor
		}
	}
	return t.OldestAgeFactor
}

// TermFactor returns the adjustment for the term length; policies without
// a term use the default.
func (t RateTable) TermFactor(termYears *int) float64 {
	if termYears == nil {
		return t.DefaultTermFactor
	}
	if factor, ok := t.TermFactors[*termYears]; ok {
		return factor
	}
	return t.DefaultTermFactor
}

// Premium computes the monthly premium rounded to cents. knownCategory is
// false when the default base rate had to be applied.
func (t RateTable) Premium(age int, category ProductCategory, coverage float64, termYears *int) (premium float64, knownCategory bool) {
	base, knownCategory := t.BaseRate(category)
	raw := (coverage / 1000) * base * t.AgeFactor(age) * t.TermFactor(termYears)
	return roundCents(raw), knownCategory
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
