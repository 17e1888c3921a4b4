package mgnrega

import (
	"testing"
	"time"
)

// TestNormalizeRecord_FieldNameTolerance verifies that upper-case spellings
// of location fields and financial-year strings resolve correctly.
func TestNormalizeRecord_FieldNameTolerance(t *testing.T) {
	r := NormalizeRecord(map[string]any{
		"STATE":    "Bihar",
		"DISTRICT": "Gaya",
		"fin_year": "2023-24",
	})

	if r.State != "Bihar" {
		t.Errorf("expected state Bihar, got %q", r.State)
	}
	if r.District != "Gaya" {
		t.Errorf("expected district Gaya, got %q", r.District)
	}
	if r.Year != 2023 {
		t.Errorf("expected year 2023, got %d", r.Year)
	}
	if r.FinancialYear != "2023-24" {
		t.Errorf("expected financial year 2023-24, got %q", r.FinancialYear)
	}
}

func TestNormalizeRecord_SnakeCaseFields(t *testing.T) {
	r := NormalizeRecord(map[string]any{
		"state_name":    "Madhya Pradesh",
		"district_name": "Bhopal",
		"year":          float64(2024), // JSON numbers decode as float64
	})

	if r.State != "Madhya Pradesh" || r.District != "Bhopal" {
		t.Errorf("unexpected location: %q / %q", r.State, r.District)
	}
	if r.Year != 2024 {
		t.Errorf("expected year 2024, got %d", r.Year)
	}
}

// TestNormalizeRecord_MissingFields verifies the normalizer is total: no
// recognizable fields still yields placeholders and the current year.
func TestNormalizeRecord_MissingFields(t *testing.T) {
	r := NormalizeRecord(map[string]any{"unrelated": "value"})

	if r.State != UnknownState {
		t.Errorf("expected %q, got %q", UnknownState, r.State)
	}
	if r.District != UnknownDistrict {
		t.Errorf("expected %q, got %q", UnknownDistrict, r.District)
	}
	if r.Year != time.Now().Year() {
		t.Errorf("expected current year default, got %d", r.Year)
	}
	if len(r.Metrics) != 0 {
		t.Errorf("expected no metrics, got %d", len(r.Metrics))
	}
}

// TestNormalizeRecord_FlatMonthColumns verifies extraction of per-month
// columns under both known suffixes.
func TestNormalizeRecord_FlatMonthColumns(t *testing.T) {
	r := NormalizeRecord(map[string]any{
		"district":      "Gaya",
		"apr_jobs":      float64(120),
		"may_work_days": float64(80),
	})

	if len(r.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d: %+v", len(r.Metrics), r.Metrics)
	}
	if r.Metrics[0].Month != "apr" || r.Metrics[0].Value != 120 {
		t.Errorf("expected {apr 120}, got %+v", r.Metrics[0])
	}
	if r.Metrics[1].Month != "may" || r.Metrics[1].Value != 80 {
		t.Errorf("expected {may 80}, got %+v", r.Metrics[1])
	}
}

func TestNormalizeRecord_FlatMonthParseFailure(t *testing.T) {
	r := NormalizeRecord(map[string]any{
		"district": "Gaya",
		"jun_jobs": "not-a-number",
	})

	if len(r.Metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(r.Metrics))
	}
	if r.Metrics[0].Value != 0 {
		t.Errorf("expected zero on parse failure, got %d", r.Metrics[0].Value)
	}
}

// TestNormalizeRecord_MonthlyArray verifies the explicit monthly-array fields
// win over flat columns, under either known name.
func TestNormalizeRecord_MonthlyArray(t *testing.T) {
	for _, field := range []string{"monthly_metrics", "metrics"} {
		r := NormalizeRecord(map[string]any{
			"district": "Pune",
			field: []any{
				map[string]any{"month": "Apr", "value": float64(1500)},
				map[string]any{"month_name": "May", "persondays": float64(2100)},
			},
			"apr_jobs": float64(999), // must be ignored
		})

		if len(r.Metrics) != 2 {
			t.Fatalf("%s: expected 2 metrics, got %d", field, len(r.Metrics))
		}
		if r.Metrics[0] != (MonthMetric{Month: "Apr", Value: 1500}) {
			t.Errorf("%s: unexpected first metric %+v", field, r.Metrics[0])
		}
		if r.Metrics[1] != (MonthMetric{Month: "May", Value: 2100}) {
			t.Errorf("%s: unexpected second metric %+v", field, r.Metrics[1])
		}
	}
}

// TestNormalizeRecord_TotalsAliases verifies the aggregate fields resolve
// from both naming conventions the government datasets use.
func TestNormalizeRecord_TotalsAliases(t *testing.T) {
	r := NormalizeRecord(map[string]any{
		"district":          "Korba",
		"job_cards_issued":  "45210",
		"persons_worked":    float64(31647),
		"total_persondays":  float64(1899432),
		"expenditure_rs":    "3214.5",
		"avg_wage_rate":     float64(209),
		"households_worked": float64(25000),
		"works_completed":   float64(412),
	})

	if r.TotalJobcards != 45210 {
		t.Errorf("jobcards: got %d", r.TotalJobcards)
	}
	if r.TotalWorkers != 31647 {
		t.Errorf("workers: got %d", r.TotalWorkers)
	}
	if r.TotalPersondaysGenerated != 1899432 {
		t.Errorf("persondays: got %d", r.TotalPersondaysGenerated)
	}
	if r.TotalExpenditureRs != 3214.5 {
		t.Errorf("expenditure: got %f", r.TotalExpenditureRs)
	}
	if r.AverageWageRate != 209 {
		t.Errorf("wage rate: got %f", r.AverageWageRate)
	}
	if r.TotalHouseholdsWorked != 25000 {
		t.Errorf("households: got %d", r.TotalHouseholdsWorked)
	}
	if r.TotalWorkCompleted != 412 {
		t.Errorf("works: got %d", r.TotalWorkCompleted)
	}
}

// TestNormalizeRecord_RetainsRaw verifies the original payload is attached
// verbatim for audit.
func TestNormalizeRecord_RetainsRaw(t *testing.T) {
	rec := map[string]any{"district": "Gaya", "oddball_field": "kept"}
	r := NormalizeRecord(rec)

	if r.Raw["oddball_field"] != "kept" {
		t.Errorf("expected raw payload retained, got %+v", r.Raw)
	}
	if r.SourceUpdatedAt.IsZero() {
		t.Error("expected sourceUpdatedAt to be stamped")
	}
}

func TestFinancialYearString(t *testing.T) {
	cases := map[int]string{
		2024: "2024-25",
		1999: "1999-00",
		2009: "2009-10",
	}
	for year, want := range cases {
		if got := FinancialYearString(year); got != want {
			t.Errorf("FinancialYearString(%d) = %q, want %q", year, got, want)
		}
	}
}
