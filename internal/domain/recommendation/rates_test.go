package recommendation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAgeFactor(t *testing.T) {
	table := DefaultRateTable()
	cases := map[int]float64{
		18: 0.8, 29: 0.8,
		30: 1.0, 39: 1.0,
		40: 1.3, 49: 1.3,
		50: 1.8, 100: 1.8,
	}
	for age, want := range cases {
		require.Equal(t, want, table.AgeFactor(age), "age %d", age)
	}
}

func TestTermFactor(t *testing.T) {
	table := DefaultRateTable()
	require.Equal(t, 1.1, table.TermFactor(termPtr(30)))
	require.Equal(t, 1.0, table.TermFactor(termPtr(20)))
	require.Equal(t, 1.0, table.TermFactor(termPtr(10)))
	require.Equal(t, 1.0, table.TermFactor(nil))
}

func TestPremium(t *testing.T) {
	table := DefaultRateTable()
	tests := []struct {
		name     string
		age      int
		category ProductCategory
		coverage float64
		term     *int
		want     float64
	}{
		{"term young", 25, TermLife, 500000, termPtr(20), 320},
		{"term thirty year midlife", 45, TermLife, 750000, termPtr(30), 858},
		{"whole life senior", 60, WholeLife, 1000000, nil, 6300},
		{"universal thirties", 35, UniversalLife, 300000, nil, 660},
		{"forties universal", 41, UniversalLife, 50000, nil, 143},
		{"rounds to cents", 25, TermLife, 12345, termPtr(20), 7.9},
		{"zero coverage", 70, WholeLife, 0, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, known := table.Premium(tc.age, tc.category, tc.coverage, tc.term)
			require.True(t, known)
			require.InDelta(t, tc.want, got, 1e-9)
			require.Equal(t, math.Round(got*100)/100, got)
		})
	}
}

func TestPremiumUnknownCategoryUsesDefaultRate(t *testing.T) {
	table := DefaultRateTable()
	got, known := table.Premium(35, ProductCategory("endowment"), 100000, nil)
	require.False(t, known)
	require.InDelta(t, 100.0, got, 1e-9)
}

func TestPremiumOverriddenRates(t *testing.T) {
	table := DefaultRateTable()
	table.BaseRates = map[ProductCategory]float64{TermLife: 1.5}
	got, known := table.Premium(35, TermLife, 100000, termPtr(20))
	require.True(t, known)
	require.InDelta(t, 150.0, got, 1e-9)

	_, known = table.Premium(35, WholeLife, 100000, nil)
	require.False(t, known)
}
