package config

import (
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

// EngineConfig merges the overrides onto the built-in engine defaults.
func (r RecommendationConfig) EngineConfig() recommendation.Config {
	out := recommendation.DefaultConfig()

	if len(r.BaseRates) > 0 {
		rates := make(map[recommendation.ProductCategory]float64, len(out.Rates.BaseRates))
		for category, rate := range out.Rates.BaseRates {
			rates[category] = rate
		}
		for code, rate := range r.BaseRates {
			rates[recommendation.ProductCategory(code)] = rate
		}
		out.Rates.BaseRates = rates
	}
	if r.DefaultBaseRate > 0 {
		out.Rates.DefaultBaseRate = r.DefaultBaseRate
	}
	if len(r.AgeBands) > 0 {
		bands := make([]recommendation.AgeBand, 0, len(r.AgeBands))
		for _, b := range r.AgeBands {
			bands = append(bands, recommendation.AgeBand{Below: b.Below, Factor: b.Factor})
		}
		out.Rates.AgeBands = bands
	}
	if r.OldestAgeFactor > 0 {
		out.Rates.OldestAgeFactor = r.OldestAgeFactor
	}
	if len(r.TermFactors) > 0 {
		terms := make(map[int]float64, len(out.Rates.TermFactors))
		for years, factor := range out.Rates.TermFactors {
			terms[years] = factor
		}
		for years, factor := range r.TermFactors {
			terms[years] = factor
		}
		out.Rates.TermFactors = terms
	}
	if r.DefaultTermFactor > 0 {
		out.Rates.DefaultTermFactor = r.DefaultTermFactor
	}

	cov := r.Coverage
	setIfPositive(&out.Coverage.NoDependentsMultiplier, cov.NoDependentsMultiplier)
	setIfPositive(&out.Coverage.FewDependentsMultiplier, cov.FewDependentsMultiplier)
	setIfPositive(&out.Coverage.ManyDependentsMultiplier, cov.ManyDependentsMultiplier)
	setIfPositive(&out.Coverage.PerDependent, cov.PerDependent)
	setIfPositive(&out.Coverage.RoundingStep, cov.RoundingStep)
	setIfPositive(&out.Coverage.Cap, cov.Cap)
	if cov.ManyDependentsThreshold > 0 {
		out.Coverage.ManyDependentsThreshold = cov.ManyDependentsThreshold
	}
	return out
}

func setIfPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
