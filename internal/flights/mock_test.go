package flights

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func suggestionTitles(airports []Airport) []string {
	return lo.Map(airports, func(a Airport, _ int) string { return a.Presentation.SuggestionTitle })
}

func TestFilterMockAirports(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"lag", []string{"Lagos (LOS)"}},
		{"LAG", []string{"Lagos (LOS)"}},
		{"(abv)", []string{"Abuja (ABV)"}},
		{"il", []string{"Ilorin (ILR)"}},
		{"zz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := suggestionTitles(FilterMockAirports(tc.query))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFilterMockAirports_ExcludesAbujaForLag(t *testing.T) {
	got := suggestionTitles(FilterMockAirports("lag"))
	require.Contains(t, got, "Lagos (LOS)")
	require.NotContains(t, got, "Abuja (ABV)")
}

func TestNearestMockAirports(t *testing.T) {
	near := NearestMockAirports(9.0, 7.2)
	require.Equal(t, []string{"ABV", "ILR", "LOS"}, lo.Map(near, func(a Airport, _ int) string { return a.SkyID }))
}

func TestMockAccessorsReturnCopies(t *testing.T) {
	first := MockItineraries()
	first[0].Legs[0].Origin.DisplayCode = "XXX"
	require.Equal(t, "ILR", MockItineraries()[0].Legs[0].Origin.DisplayCode)

	airports := MockAirports()
	airports[0].Coordinates.Lat = 0
	require.NotZero(t, MockAirports()[0].Coordinates.Lat)
}

func TestMockFlightDetails(t *testing.T) {
	d, ok := MockFlightDetails("mock-flight-1")
	require.True(t, ok)
	require.Len(t, d.PricingOptions, 1)
	require.Equal(t, "Arik Air", d.PricingOptions[0].Agents[0].Name)

	_, ok = MockFlightDetails("unknown")
	require.False(t, ok)
}
