package recommendation

import "math"

// CoveragePolicy holds the knobs of the coverage amount formula.
type CoveragePolicy struct {
	NoDependentsMultiplier   float64
	FewDependentsMultiplier  float64
	ManyDependentsMultiplier float64
	// ManyDependentsThreshold is the dependent count from which the
	// ManyDependentsMultiplier applies.
	ManyDependentsThreshold int
	PerDependent            float64
	RoundingStep            float64
	Cap                     float64
}

// DefaultCoveragePolicy returns 5x/7x/10x income plus 50k per dependent,
// rounded to the nearest 50k and capped at 2M.
func DefaultCoveragePolicy() CoveragePolicy {
	return CoveragePolicy{
		NoDependentsMultiplier:   5,
		FewDependentsMultiplier:  7,
		ManyDependentsMultiplier: 10,
		ManyDependentsThreshold:  3,
		PerDependent:             50000,
		RoundingStep:             50000,
		Cap:                      2000000,
	}
}

// Multiplier returns the income multiplier for the dependent count.
func (p CoveragePolicy) Multiplier(dependents int) float64 {
	switch {
	case dependents == 0:
		return p.NoDependentsMultiplier
	case dependents >= p.ManyDependentsThreshold:
		return p.ManyDependentsMultiplier
	default:
		return p.FewDependentsMultiplier
	}
}

// Amount computes the recommended coverage. Only income and dependents
// take part in the formula.
func (p CoveragePolicy) Amount(income float64, dependents int) float64 {
	total := income*p.Multiplier(dependents) + float64(dependents)*p.PerDependent
	if p.RoundingStep > 0 {
		total = math.Round(total/p.RoundingStep) * p.RoundingStep
	}
	if p.Cap > 0 && total > p.Cap {
		total = p.Cap
	}
	return total
}
