package collection

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/helpboard/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Name
		wantErr bool
	}{
		{"posts", Posts, false},
		{"community", Community, false},
		{"helpers", Helpers, false},
		{"Posts", "", true},
		{"", "", true},
		{"users", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrCollectionNotFound) {
					t.Fatalf("expected ErrCollectionNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	n := Names()
	n[0] = "mutated"
	if Names()[0] != Posts {
		t.Error("Names must return a copy")
	}
}
