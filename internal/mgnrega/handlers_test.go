package mgnrega

import (
	"slices"
	"testing"
)

func TestSortDistricts(t *testing.T) {
	districts := []string{"hugli", "Bastar", "Gaya", "araria", "Howrah"}
	sortDistricts(districts)

	want := []string{"araria", "Bastar", "Gaya", "Howrah", "hugli"}
	if !slices.Equal(districts, want) {
		t.Errorf("got %v, want %v", districts, want)
	}
}
