package mgnrega

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Government datasets are not contractually stable: the same logical field
// shows up under snake_case, upper-case, or title-case names depending on the
// dataset vintage. Each canonical field therefore probes a fixed priority
// list of spellings, and normalization always produces a best-effort record
// rather than failing. Only records with no recognizable district at all get
// filtered, and that happens in the caller.

var (
	stateKeys    = []string{"state_name", "state", "STATE", "State"}
	districtKeys = []string{"district_name", "district", "DISTRICT", "District"}
	finYearKeys  = []string{"fin_year", "financial_year"}

	jobcardKeys     = []string{"total_jobcards", "job_cards_issued"}
	workerKeys      = []string{"total_workers", "persons_worked"}
	householdKeys   = []string{"total_households_worked", "households_worked"}
	persondayKeys   = []string{"persondays_generated", "total_persondays"}
	workDoneKeys    = []string{"total_work_completed", "works_completed", "work_completed"}
	wageRateKeys    = []string{"average_wage_rate", "avg_wage_rate", "wage_rate"}
	expenditureKeys = []string{"total_expenditure", "expenditure_rs"}
)

// flatMonths are the column prefixes used by datasets that flatten the
// monthly breakdown into per-month columns like apr_jobs or may_work_days.
var flatMonths = []string{"apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec", "jan", "feb", "mar"}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// NormalizeRecord maps one raw upstream record into a canonical Report. Pure
// and total: missing fields default to placeholders or zero, and no input
// causes an error. The returned report is not yet persisted.
func NormalizeRecord(rec map[string]any) *Report {
	r := &Report{
		State:    stringField(rec, stateKeys, UnknownState),
		District: stringField(rec, districtKeys, UnknownDistrict),

		TotalJobcards:            intField(rec, jobcardKeys),
		TotalWorkers:             intField(rec, workerKeys),
		TotalHouseholdsWorked:    intField(rec, householdKeys),
		TotalPersondaysGenerated: intField(rec, persondayKeys),
		TotalWorkCompleted:       intField(rec, workDoneKeys),
		AverageWageRate:          floatField(rec, wageRateKeys),
		TotalExpenditureRs:       floatField(rec, expenditureKeys),

		Raw:             RawPayload(rec),
		SourceUpdatedAt: time.Now(),
	}

	r.Year, r.FinancialYear = resolveYear(rec)
	r.Metrics = resolveMetrics(rec)

	return r
}

// resolveYear prefers an explicit numeric year field, then a 4-digit year
// embedded in a financial-year string, then the current calendar year.
func resolveYear(rec map[string]any) (int, string) {
	if y, ok := asInt(rec["year"]); ok && y > 0 {
		return y, FinancialYearString(y)
	}

	for _, k := range finYearKeys {
		s, ok := rec[k].(string)
		if !ok || s == "" {
			continue
		}
		if m := yearPattern.FindString(s); m != "" {
			y, _ := strconv.Atoi(m)
			return y, s
		}
	}

	y := time.Now().Year()
	return y, FinancialYearString(y)
}

// resolveMetrics prefers an explicit monthly array under either known field
// name, else scans for flat per-month columns.
func resolveMetrics(rec map[string]any) MetricList {
	for _, k := range []string{"monthly_metrics", "metrics"} {
		arr, ok := rec[k].([]any)
		if !ok {
			continue
		}
		var out MetricList
		for _, item := range arr {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			month := stringField(entry, []string{"month", "month_name"}, "")
			if month == "" {
				continue
			}
			out = append(out, MonthMetric{
				Month: month,
				Value: intField(entry, []string{"value", "persondays", "work_days"}),
			})
		}
		return out
	}

	var out MetricList
	for _, m := range flatMonths {
		jobsKey := m + "_jobs"
		workKey := m + "_work_days"
		jv, hasJobs := rec[jobsKey]
		wv, hasWork := rec[workKey]
		if !hasJobs && !hasWork {
			continue
		}
		// Jobs column wins when it carries a non-zero value, else the
		// work-days column; unparseable values fall back to zero.
		v := 0
		if hasJobs {
			if i, ok := asInt(jv); ok {
				v = i
			}
		}
		if v == 0 && hasWork {
			if i, ok := asInt(wv); ok {
				v = i
			}
		}
		out = append(out, MonthMetric{Month: m, Value: v})
	}
	return out
}

// stringField returns the first non-empty string found under keys.
func stringField(rec map[string]any, keys []string, fallback string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return fallback
}

// intField returns the first parseable integer found under keys, zero when
// nothing parses.
func intField(rec map[string]any, keys []string) int {
	for _, k := range keys {
		if v, ok := asInt(rec[k]); ok {
			return v
		}
	}
	return 0
}

// floatField returns the first parseable number found under keys.
func floatField(rec map[string]any, keys []string) float64 {
	for _, k := range keys {
		if v, ok := asFloat(rec[k]); ok {
			return v
		}
	}
	return 0
}

// asInt coerces the value shapes JSON decoding produces (float64, string,
// json.Number-ish) into an int. Parse failures report !ok rather than error.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// describeRecord renders a short identifier for log lines about one record.
func describeRecord(r *Report) string {
	return fmt.Sprintf("%s/%s/%d", r.State, r.District, r.Year)
}
