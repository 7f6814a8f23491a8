package recommendation

import (
	"fmt"

	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
)

// Accepted profile ranges.
const (
	MinAge        = 18
	MaxAge        = 100
	MaxIncome     = 10000000
	MaxDependents = 20
)

// Validate reports a profile outside the accepted ranges. Callers are
// expected to have validated already, so a failure here is a contract
// violation rather than user error.
func (p UserProfile) Validate() error {
	switch {
	case p.Age < MinAge || p.Age > MaxAge:
		return invalidProfile("age must be between %d and %d, got %d", MinAge, MaxAge, p.Age)
	case p.Income < 0 || p.Income > MaxIncome:
		return invalidProfile("income must be between 0 and %d, got %v", MaxIncome, p.Income)
	case p.Dependents < 0 || p.Dependents > MaxDependents:
		return invalidProfile("dependents must be between 0 and %d, got %d", MaxDependents, p.Dependents)
	case !p.RiskTolerance.Valid():
		return invalidProfile("riskTolerance must be one of low, medium, high, got %q", p.RiskTolerance)
	}
	return nil
}

func invalidProfile(format string, args ...any) error {
	return apperrors.Wrap(CodeInvalidProfile, fmt.Sprintf(format, args...), nil)
}
