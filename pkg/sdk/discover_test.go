package helpboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustListing(t *testing.T, p ListingParams) Listing {
	t.Helper()
	l, err := NewListing(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return l
}

func fixture(t *testing.T) []Listing {
	t.Helper()
	tana := &Point{Lat: -18.91, Lon: 47.53}
	toamasina := &Point{Lat: -18.15, Lon: 49.40}
	return []Listing{
		mustListing(t, ListingParams{
			ID: "a", Title: "Harvest rice", Kind: HelpRequest, Category: Farming,
			Urgency: High, Status: Open, AccountType: Personal, Location: tana,
		}),
		mustListing(t, ListingParams{
			ID: "b", Title: "Fix my phone", Kind: HelpRequest, Category: Electronics,
			Urgency: Low, Status: Open, AccountType: Company, Location: toamasina,
		}),
		mustListing(t, ListingParams{
			ID: "c", Title: "Rice seedlings", Description: "From the highlands", Kind: Sell,
			Category: Farming, Urgency: Medium, Status: Solved, AccountType: Company,
		}),
	}
}

func ids(rs ResultSet) []string {
	items := rs.Items()
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID()
	}
	return out
}

func TestDiscover_FacetsAndTerm(t *testing.T) {
	rs := Discover(fixture(t)).Term("rice").Category(Farming).Do()

	if diff := cmp.Diff([]string{"a", "c"}, ids(rs)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	counts := rs.Counts()
	// category is floated to all, so both farming listings count and phone does not match the term
	if got := counts.Get(FacetCategory, string(Farming)); got != 2 {
		t.Errorf("Farming = %d, want 2", got)
	}
	if got := counts.Get(FacetCategory, string(Electronics)); got != 0 {
		t.Errorf("Electronics = %d, want 0", got)
	}
}

func TestDiscover_SelfExcludingFacet(t *testing.T) {
	rs := Discover(fixture(t)).Urgency(High).Do()

	if diff := cmp.Diff([]string{"a"}, ids(rs)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	counts := rs.Counts()
	for _, u := range []Urgency{Low, Medium, High} {
		if got := counts.Get(FacetUrgency, string(u)); got != 1 {
			t.Errorf("urgency %s = %d, want 1", u, got)
		}
	}
}

func TestDiscover_AccountToggles(t *testing.T) {
	rs := Discover(fixture(t)).HideBusiness().Do()
	if diff := cmp.Diff([]string{"a"}, ids(rs)); diff != "" {
		t.Errorf("hide business (-want +got):\n%s", diff)
	}
	rs = Discover(fixture(t)).HidePersonal().Type(HelpRequest).Do()
	if diff := cmp.Diff([]string{"b"}, ids(rs)); diff != "" {
		t.Errorf("hide personal (-want +got):\n%s", diff)
	}
}

func TestDiscover_Near(t *testing.T) {
	rs := Discover(fixture(t)).Near(DefaultCenter.Lat, DefaultCenter.Lon).Km(20).Do()
	if diff := cmp.Diff([]string{"a"}, ids(rs)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Within(t *testing.T) {
	r := Rect{MinLat: -19, MinLon: 49, MaxLat: -18, MaxLon: 50}
	rs := Discover(fixture(t)).Near(0, 0).Km(10).Within(r).Do()
	if diff := cmp.Diff([]string{"b"}, ids(rs)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_MalformedBoundMatchesNothing(t *testing.T) {
	tests := []struct {
		name string
		b    *DiscoverBuilder
	}{
		{"zero radius", Discover(fixture(t)).Near(DefaultCenter.Lat, DefaultCenter.Lon)},
		{"negative radius", Discover(fixture(t)).Near(DefaultCenter.Lat, DefaultCenter.Lon).Km(-1)},
		{"invalid center", Discover(fixture(t)).Near(120, 0).Km(10)},
		{"inverted rect", Discover(fixture(t)).Within(Rect{MinLat: 1, MaxLat: -1, MinLon: 0, MaxLon: 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := tt.b.Do()
			if rs.Total() != 0 {
				t.Errorf("expected no items, got %v", ids(rs))
			}
			if got := rs.Counts().Get(FacetCategory, string(Farming)); got != 0 {
				t.Errorf("expected zero counts, got %d", got)
			}
		})
	}
}

func TestDiscover_QueryMatchesSearch(t *testing.T) {
	ls := fixture(t)
	b := Discover(ls).Term("RICE").Status(Open)
	q := b.Query()

	var want []string
	for i := range ls {
		if Match(ls[i], q) {
			want = append(want, ls[i].ID())
		}
	}
	if diff := cmp.Diff(want, ids(Search(ls, q))); diff != "" {
		t.Errorf("Search and Match disagree (-match +search):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, want); diff != "" {
		t.Errorf("unexpected matches (-want +got):\n%s", diff)
	}
}
