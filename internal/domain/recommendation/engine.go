package recommendation

import (
	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
)

// Config is the overridable configuration of the engine.
type Config struct {
	Rates    RateTable
	Coverage CoveragePolicy
}

// DefaultConfig returns the built-in rate table and coverage policy.
func DefaultConfig() Config {
	return Config{
		Rates:    DefaultRateTable(),
		Coverage: DefaultCoveragePolicy(),
	}
}

// Engine turns a profile into a quote. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	rules    []Rule
	rates    RateTable
	coverage CoveragePolicy
}

// NewEngine builds an engine evaluating DefaultRules with cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		rules:    DefaultRules(),
		rates:    cfg.Rates,
		coverage: cfg.Coverage,
	}
}

// Evaluate selects the category, then computes coverage and premium.
func (e *Engine) Evaluate(profile UserProfile) (Quote, error) {
	outcome, ok := SelectCategory(e.rules, profile)
	if !ok {
		return Quote{}, apperrors.Wrap(CodeNoRuleMatched, "no recommendation rule matched the profile", nil)
	}

	coverage := e.coverage.Amount(profile.Income, profile.Dependents)
	premium, known := e.rates.Premium(profile.Age, outcome.Category, coverage, outcome.TermYears)

	return Quote{
		Draft: Draft{
			Category:       outcome.Category,
			TermYears:      outcome.TermYears,
			CoverageAmount: coverage,
			MonthlyPremium: premium,
			Explanation:    outcome.Explanation,
		},
		RuleID:             outcome.RuleID,
		DefaultRateApplied: !known,
	}, nil
}
