package collection

import (
	"fmt"

	"github.com/kailas-cloud/helpboard/internal/domain"
)

// Name identifies one of the fixed listing collections.
type Name string

const (
	// Posts is the home feed of help posts.
	Posts Name = "posts"
	// Community is the community board of tips, stories and expert content.
	Community Name = "community"
	// Helpers are the user records shown on the map.
	Helpers Name = "helpers"
)

var names = []Name{Posts, Community, Helpers}

// Names returns every collection in a fixed order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// IsValid checks if the collection is one of the supported values.
func (n Name) IsValid() bool {
	return n == Posts || n == Community || n == Helpers
}

// Parse resolves a collection name, failing with ErrCollectionNotFound.
func Parse(s string) (Name, error) {
	n := Name(s)
	if !n.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, s)
	}
	return n, nil
}
