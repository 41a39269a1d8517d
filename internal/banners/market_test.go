package banners

import "testing"

func TestResolveMarketPrecedence(t *testing.T) {
	cases := []struct {
		name                          string
		identity, header, query, want string
	}{
		{"identity wins over header and query", "KG", "US", "US", "KG"},
		{"identity used verbatim", "us", "", "", "us"},
		{"header wins over query", "", "us", "kg", "US"},
		{"query when nothing else", "", "", "kg", "KG"},
		{"default when request says nothing", "", "", "", "KG"},
		{"unknown codes pass through", "", "", "mars", "MARS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveMarket(tc.identity, tc.header, tc.query, "KG")
			if got != tc.want {
				t.Fatalf("ResolveMarket(%q, %q, %q) = %q, want %q", tc.identity, tc.header, tc.query, got, tc.want)
			}
		})
	}
}
