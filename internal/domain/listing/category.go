package listing

import (
	"regexp"
	"strings"
)

// Category is one value of the fixed category enumeration.
// Categories are compared exactly (case-sensitive).
type Category string

// Category constants.
const (
	Farming       Category = "Farming"
	Electronics   Category = "Electronics"
	Tutoring      Category = "Tutoring"
	Health        Category = "Health"
	Mechanics     Category = "Mechanics"
	Repairs       Category = "Repairs"
	Automotive    Category = "Automotive"
	Construction  Category = "Construction"
	Cooking       Category = "Cooking"
	Language      Category = "Language"
	AnimalCare    Category = "Animal Care"
	HairSalon     Category = "Hair Salon"
	EventPlanning Category = "Event Planning"
	TaxServices   Category = "Tax Services"
	Other         Category = "Other"
)

var categories = []Category{
	Farming, Electronics, Tutoring, Health, Mechanics, Repairs, Automotive,
	Construction, Cooking, Language, AnimalCare, HairSalon, EventPlanning,
	TaxServices, Other,
}

// Categories returns the category enumeration in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid checks if the category belongs to the enumeration.
func (c Category) IsValid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

var (
	nonKeyChars = regexp.MustCompile(`[^a-z0-9]`)

	// Keys whose translation entry predates the generic derivation.
	specialKeys = map[string]string{
		"animal_care":    "category_animal",
		"hair_salon":     "category_hair",
		"event_planning": "category_event",
		"tax_services":   "category_tax",
	}
)

// TranslationKey returns the UI string key for the category,
// e.g. "Farming" -> "category_farming", "Animal Care" -> "category_animal".
func (c Category) TranslationKey() string {
	key := nonKeyChars.ReplaceAllString(strings.ToLower(string(c)), "_")
	if special, ok := specialKeys[key]; ok {
		return special
	}
	return "category_" + key
}
