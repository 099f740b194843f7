package facet

// Facet is a filterable listing dimension with enumerated values.
type Facet string

// Facet constants.
const (
	Category    Facet = "category"
	Type        Facet = "type"
	Urgency     Facet = "urgency"
	Status      Facet = "status"
	AccountType Facet = "account_type"
)

// All is the sentinel value meaning "no filter applied for this facet".
const All = "all"

var all = []Facet{Category, Type, Urgency, Status, AccountType}

// Facets returns every facet in a fixed order.
func Facets() []Facet {
	out := make([]Facet, len(all))
	copy(out, all)
	return out
}

// IsValid checks if the facet is one of the supported values.
func (f Facet) IsValid() bool {
	for _, v := range all {
		if v == f {
			return true
		}
	}
	return false
}

// Counts maps each facet to the number of matching items per facet value.
type Counts map[Facet]map[string]int

// NewCounts returns Counts with an empty map for every facet.
func NewCounts() Counts {
	c := make(Counts, len(all))
	for _, f := range all {
		c[f] = make(map[string]int)
	}
	return c
}

// Get returns the count for value under facet f, 0 when absent.
func (c Counts) Get(f Facet, value string) int {
	return c[f][value]
}

// Add increments the count for value under facet f.
func (c Counts) Add(f Facet, value string) {
	m, ok := c[f]
	if !ok {
		m = make(map[string]int)
		c[f] = m
	}
	m[value]++
}

// IsZero reports whether every count is zero.
func (c Counts) IsZero() bool {
	for _, m := range c {
		for _, n := range m {
			if n != 0 {
				return false
			}
		}
	}
	return true
}
