package mgnrega

import (
	"context"
	"testing"
)

// TestSynthesize_Shape verifies every synthetic report carries exactly twelve
// monthly metrics in fixed financial-year order.
func TestSynthesize_Shape(t *testing.T) {
	r := Synthesize("Bihar", "Gaya", 2024)

	if r.State != "Bihar" || r.District != "Gaya" || r.Year != 2024 {
		t.Errorf("unexpected key: %s/%s/%d", r.State, r.District, r.Year)
	}
	if r.FinancialYear != "2024-25" {
		t.Errorf("financial year: got %q", r.FinancialYear)
	}
	if len(r.Metrics) != 12 {
		t.Fatalf("expected 12 metrics, got %d", len(r.Metrics))
	}
	for i, month := range FinancialYearMonths {
		if r.Metrics[i].Month != month {
			t.Errorf("metric %d: expected month %s, got %s", i, month, r.Metrics[i].Month)
		}
	}
}

func TestSynthesize_Ranges(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := Synthesize("Bihar", "Gaya", 2024)

		if r.TotalJobcards < 10000 || r.TotalJobcards >= 60000 {
			t.Fatalf("jobcards out of range: %d", r.TotalJobcards)
		}
		if r.TotalWorkers != r.TotalJobcards*7/10 {
			t.Fatalf("workers not 70%% of jobcards: %d vs %d", r.TotalWorkers, r.TotalJobcards)
		}
		days := r.TotalPersondaysGenerated / r.TotalWorkers
		if days < 30 || days >= 80 {
			t.Fatalf("days per worker out of range: %d", days)
		}
		if r.TotalExpenditureRs < 0 {
			t.Fatalf("negative expenditure: %f", r.TotalExpenditureRs)
		}
		for _, m := range r.Metrics {
			if m.Value < 1000 || m.Value >= 9000 {
				t.Fatalf("metric %s out of range: %d", m.Month, m.Value)
			}
		}
	}
}

// TestSynthesize_SeasonalBoost verifies the summer months carry a strictly
// higher expected value than the non-boosted base. Averaged over many draws
// the boosted mean must clearly separate from the base mean.
func TestSynthesize_SeasonalBoost(t *testing.T) {
	const draws = 200

	var summerSum, winterSum, summerN, winterN int
	for i := 0; i < draws; i++ {
		r := Synthesize("Bihar", "Gaya", 2024)
		for _, m := range r.Metrics {
			switch m.Month {
			case "May", "Jun", "Jul":
				summerSum += m.Value
				summerN++
			case "Jan", "Feb", "Mar":
				winterSum += m.Value
				winterN++
			}
		}
	}

	summerAvg := float64(summerSum) / float64(summerN)
	winterAvg := float64(winterSum) / float64(winterN)

	// Base mean is 3500, boosted mean 5250; even with sampling noise the
	// ratio stays far above 1.2.
	if summerAvg < winterAvg*1.2 {
		t.Errorf("expected clear seasonal boost, summer avg %.0f vs winter avg %.0f", summerAvg, winterAvg)
	}
}

// TestSynthesize_TaggedAsGenerated verifies synthetic data stays
// distinguishable from real upstream data.
func TestSynthesize_TaggedAsGenerated(t *testing.T) {
	r := Synthesize("Bihar", "Gaya", 2024)

	if !r.Generated {
		t.Error("expected Generated flag set")
	}
	if r.Raw["generated"] != true {
		t.Errorf("expected raw generated tag, got %+v", r.Raw)
	}
}

func TestGenerateDistrictReports(t *testing.T) {
	reports := GenerateDistrictReports("Chhattisgarh", "Korba", "geolocation")

	if len(reports) != 3 {
		t.Fatalf("expected 3 years of reports, got %d", len(reports))
	}
	years := map[int]bool{}
	for _, r := range reports {
		years[r.Year] = true
		if r.Raw["autoAdded"] != true {
			t.Errorf("expected autoAdded tag, got %+v", r.Raw)
		}
		if r.Raw["detectedFrom"] != "geolocation" {
			t.Errorf("expected detectedFrom tag, got %+v", r.Raw)
		}
	}
	if len(years) != 3 {
		t.Errorf("expected 3 distinct years, got %v", years)
	}
}

func TestSeedDatabase(t *testing.T) {
	store := newMockStore()
	catalog := Catalog{
		"Bihar":  {"Patna", "Gaya"},
		"Odisha": {"Puri"},
	}

	count, err := SeedDatabase(context.Background(), store, catalog)
	if err != nil {
		t.Fatalf("SeedDatabase: %v", err)
	}

	// 3 districts x 3 years
	if count != 9 {
		t.Errorf("expected 9 seeded records, got %d", count)
	}
	if len(store.reports) != 9 {
		t.Errorf("expected 9 stored records, got %d", len(store.reports))
	}
}
