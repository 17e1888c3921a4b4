package mgnrega

import (
	"context"
	"log"
	"math"
	"math/rand/v2"
	"time"
)

// The fallback generator keeps the dashboard demonstrably usable when no live
// upstream is reachable: it synthesizes plausible-looking statistics shaped
// like the real scheme data. Every generated record is tagged both in its raw
// payload and in the indexed Generated column, so auditors can always tell
// filler from genuine figures. The numbers are illustrative, not a forecast.

// summer months get a seasonal multiplier: MGNREGA employment peaks before
// the monsoon when farm work is scarce.
var summerMonths = map[string]bool{"May": true, "Jun": true, "Jul": true}

// Synthesize builds one synthetic report for a (state, district, year) key.
func Synthesize(state, district string, year int) *Report {
	totalJobcards := 10000 + rand.IntN(50000)
	totalWorkers := totalJobcards * 7 / 10
	daysPerWorker := 30 + rand.IntN(50)
	totalPersondays := totalWorkers * daysPerWorker
	wagePerDay := 100 + rand.Float64()*150
	// Expenditure is conventionally reported in lakhs of rupees.
	totalExpenditure := math.Floor(float64(totalPersondays) * wagePerDay / 100000)

	return &Report{
		State:                    state,
		District:                 district,
		Year:                     year,
		FinancialYear:            FinancialYearString(year),
		TotalJobcards:            totalJobcards,
		TotalWorkers:             totalWorkers,
		TotalHouseholdsWorked:    totalWorkers * 8 / 10,
		TotalPersondaysGenerated: totalPersondays,
		TotalWorkCompleted:       100 + rand.IntN(500),
		AverageWageRate:          math.Floor(wagePerDay),
		TotalExpenditureRs:       totalExpenditure,
		Metrics:                  synthesizeMetrics(),
		Generated:                true,
		Raw: RawPayload{
			"generated": true,
			"note":      "Sample data for testing",
		},
		SourceUpdatedAt: time.Now(),
	}
}

// synthesizeMetrics draws twelve monthly values, one per financial-year
// month, with the seasonal boost applied to the summer peak.
func synthesizeMetrics() MetricList {
	metrics := make(MetricList, 0, len(FinancialYearMonths))
	for _, month := range FinancialYearMonths {
		base := 1000 + rand.IntN(5000)
		boost := 1.0
		if summerMonths[month] {
			boost = 1.5
		}
		metrics = append(metrics, MonthMetric{
			Month: month,
			Value: int(math.Floor(float64(base) * boost)),
		})
	}
	return metrics
}

// GenerateDistrictReports synthesizes the last three financial years for a
// district, tagging the records as auto-added (add-district path).
func GenerateDistrictReports(state, district, detectedFrom string) []*Report {
	currentYear := time.Now().Year()
	if detectedFrom == "" {
		detectedFrom = "manual"
	}

	var reports []*Report
	for _, year := range []int{currentYear, currentYear - 1, currentYear - 2} {
		r := Synthesize(state, district, year)
		r.Raw = RawPayload{
			"generated":    true,
			"autoAdded":    true,
			"detectedFrom": detectedFrom,
			"note":         "Auto-generated data for user-requested district",
		}
		reports = append(reports, r)
	}
	return reports
}

// SeedDatabase fills the store with synthetic reports for every catalog
// district over the last three financial years. Existing keys are
// overwritten in place.
func SeedDatabase(ctx context.Context, store ReportStore, catalog Catalog) (int, error) {
	log.Println("Starting database seeding with sample MGNREGA data...")
	start := time.Now()

	currentYear := time.Now().Year()
	years := []int{currentYear, currentYear - 1, currentYear - 2}

	count := 0
	for _, state := range catalog.States() {
		for _, district := range catalog[state] {
			for _, year := range years {
				if _, err := store.UpsertReport(ctx, Synthesize(state, district, year)); err != nil {
					return count, err
				}
				count++
				if count%50 == 0 {
					log.Printf("Seeded %d records...", count)
				}
			}
		}
	}

	log.Printf("Seeding complete: %d records in %.2fs", count, time.Since(start).Seconds())
	return count, nil
}
