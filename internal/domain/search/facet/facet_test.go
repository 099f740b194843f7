package facet

import "testing"

func TestNewCounts_HasEveryFacet(t *testing.T) {
	c := NewCounts()
	for _, f := range Facets() {
		if _, ok := c[f]; !ok {
			t.Errorf("missing facet %q", f)
		}
	}
	if !c.IsZero() {
		t.Error("new counts must be zero")
	}
}

func TestCounts_AddGet(t *testing.T) {
	c := NewCounts()
	c.Add(Category, "Farming")
	c.Add(Category, "Farming")
	c.Add(Urgency, "high")

	if c.Get(Category, "Farming") != 2 {
		t.Errorf("Farming = %d", c.Get(Category, "Farming"))
	}
	if c.Get(Category, "Health") != 0 {
		t.Error("missing value must read as 0")
	}
	if c.IsZero() {
		t.Error("expected non-zero")
	}
}

func TestCounts_GetOnNil(t *testing.T) {
	var c Counts
	if c.Get(Status, "open") != 0 {
		t.Error("nil counts must read as 0")
	}
	if !c.IsZero() {
		t.Error("nil counts are zero")
	}
}

func TestFacet_IsValid(t *testing.T) {
	if !AccountType.IsValid() {
		t.Error("account_type should be valid")
	}
	if Facet("region").IsValid() {
		t.Error("region is not a facet")
	}
}
