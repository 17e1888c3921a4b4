package nregaportal

import (
	"testing"
	"time"
)

func TestFinYear(t *testing.T) {
	cases := map[int]string{
		2024: "2024-25",
		2009: "2009-10",
		1999: "1999-00",
	}
	for year, want := range cases {
		if got := FinYear(year); got != want {
			t.Errorf("FinYear(%d) = %q, want %q", year, got, want)
		}
	}
}

func TestCurrentFinancialYear(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), 2024},
	}
	for _, c := range cases {
		if got := currentFinancialYear(c.date); got != c.want {
			t.Errorf("currentFinancialYear(%s) = %d, want %d", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestDistrictState(t *testing.T) {
	if got := districtState("2210"); got != "22" {
		t.Errorf("expected state code 22 for Korba, got %q", got)
	}
	if got := districtState("x"); got != "" {
		t.Errorf("expected empty state for short code, got %q", got)
	}
}

// TestCodeTablesConsistent verifies every district code's state prefix maps
// to a known state code.
func TestCodeTablesConsistent(t *testing.T) {
	known := map[string]bool{}
	for _, code := range StateCodes {
		known[code] = true
	}

	for district, code := range DistrictCodes {
		if len(code) != 4 {
			t.Errorf("district %s: code %q is not 4 digits", district, code)
		}
		if !known[districtState(code)] {
			t.Errorf("district %s: state prefix %q not in StateCodes", district, districtState(code))
		}
	}
}
