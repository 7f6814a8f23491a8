package recommendation

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
)

func TestUserProfileValidate(t *testing.T) {
	valid := []UserProfile{
		{Age: 18, Income: 0, Dependents: 0, RiskTolerance: RiskLow},
		{Age: 100, Income: MaxIncome, Dependents: 20, RiskTolerance: RiskHigh},
		{Age: 40, Income: 55000.5, Dependents: 3, RiskTolerance: RiskMedium},
	}
	for _, p := range valid {
		require.NoError(t, p.Validate(), "%+v", p)
	}

	invalid := map[string]UserProfile{
		"too young":         {Age: 17, RiskTolerance: RiskLow},
		"too old":           {Age: 101, RiskTolerance: RiskLow},
		"negative income":   {Age: 30, Income: -1, RiskTolerance: RiskLow},
		"income too high":   {Age: 30, Income: MaxIncome + 1, RiskTolerance: RiskLow},
		"negative children": {Age: 30, Dependents: -1, RiskTolerance: RiskLow},
		"too many children": {Age: 30, Dependents: 21, RiskTolerance: RiskLow},
		"unknown tolerance": {Age: 30, RiskTolerance: "extreme"},
		"empty tolerance":   {Age: 30},
	}
	for name, p := range invalid {
		err := p.Validate()
		require.Error(t, err, name)
		require.True(t, apperrors.IsCode(err, CodeInvalidProfile), name)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(string(c))
		require.True(t, ok)
		require.Equal(t, c, got)
	}
	_, ok := ParseCategory("Term Life")
	require.False(t, ok)

	require.Equal(t, "Term Life", TermLife.DisplayName())
	require.Equal(t, "Whole Life", WholeLife.DisplayName())
	require.Equal(t, "Universal Life", UniversalLife.DisplayName())
	require.True(t, TermLife.SupportsTerm())
	require.False(t, WholeLife.SupportsTerm())
	require.False(t, UniversalLife.SupportsTerm())
}
