package recommendation

// Rule is one entry of the ordered category decision list.
type Rule struct {
	ID          string
	Match       func(UserProfile) bool
	Category    ProductCategory
	TermYears   *int
	Explanation string
}

// Outcome is the category decision produced by the first matching rule.
type Outcome struct {
	RuleID      string
	Category    ProductCategory
	TermYears   *int
	Explanation string
}

// Rule IDs, in evaluation order.
const (
	RuleYoungHighRisk      = "young_high_risk"
	RuleConservativeOlder  = "conservative_older"
	RuleMidlifeDependents  = "midlife_dependents"
	RuleModerateRisk       = "moderate_risk"
	RuleAffordableBaseline = "affordable_baseline"
)

// DefaultRules returns the decision list. Order matters: profiles that
// satisfy several predicates resolve to the earliest one.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID: RuleYoungHighRisk,
			Match: func(p UserProfile) bool {
				return p.Age < 40 && p.RiskTolerance == RiskHigh
			},
			Category:    TermLife,
			TermYears:   termPtr(20),
			Explanation: "Term life insurance is ideal for young adults with high risk tolerance. It provides maximum coverage at the lowest cost during your peak earning years.",
		},
		{
			ID: RuleConservativeOlder,
			Match: func(p UserProfile) bool {
				return p.Age >= 40 && p.RiskTolerance == RiskLow
			},
			Category:    WholeLife,
			Explanation: "Whole life insurance provides permanent coverage with a cash value component. Perfect for conservative investors seeking lifelong protection.",
		},
		{
			ID: RuleMidlifeDependents,
			Match: func(p UserProfile) bool {
				return p.Age >= 30 && p.Age < 50 && p.Dependents > 0
			},
			Category:    TermLife,
			TermYears:   termPtr(30),
			Explanation: "With dependents to protect, a 30-year term life policy ensures coverage through your children's college years and beyond.",
		},
		{
			ID: RuleModerateRisk,
			Match: func(p UserProfile) bool {
				return p.RiskTolerance == RiskMedium
			},
			Category:    UniversalLife,
			Explanation: "Universal life insurance offers flexible premiums and death benefits with potential cash value growth, suitable for moderate risk preferences.",
		},
		{
			ID:          RuleAffordableBaseline,
			Match:       func(UserProfile) bool { return true },
			Category:    TermLife,
			TermYears:   termPtr(20),
			Explanation: "Term life insurance provides essential protection at an affordable cost, making it suitable for most life stages.",
		},
	}
}

// SelectCategory walks rules in order and returns the first match.
// ok is false only when no rule matches, which cannot happen with
// DefaultRules because the last entry always matches.
func SelectCategory(rules []Rule, profile UserProfile) (Outcome, bool) {
	for _, rule := range rules {
		if rule.Match == nil || !rule.Match(profile) {
			continue
		}
		out := Outcome{
			RuleID:      rule.ID,
			Category:    rule.Category,
			Explanation: rule.Explanation,
		}
		if rule.TermYears != nil {
			out.TermYears = termPtr(*rule.TermYears)
		}
		return out, true
	}
	return Outcome{}, false
}
