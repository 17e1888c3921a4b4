package mgnrega

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Placeholder names the normalizer falls back to when a record carries no
// recognizable location fields. Records still tagged with UnknownDistrict
// after normalization are never persisted.
const (
	UnknownState    = "Unknown State"
	UnknownDistrict = "Unknown District"
)

// Months of the Indian financial year in calendar order.
var FinancialYearMonths = []string{
	"Apr", "May", "Jun", "Jul", "Aug", "Sep",
	"Oct", "Nov", "Dec", "Jan", "Feb", "Mar",
}

// MonthMetric is one month's value in a report's monthly breakdown.
type MonthMetric struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

// MetricList stores the monthly breakdown as a jsonb column.
type MetricList []MonthMetric

func (m MetricList) Value() (driver.Value, error) {
	if m == nil {
		m = MetricList{}
	}
	return json.Marshal(m)
}

func (m *MetricList) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return errors.New("metric list: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}

// RawPayload keeps the originating upstream record verbatim for audit and
// reprocessing, stored as a jsonb column.
type RawPayload map[string]any

func (r RawPayload) Value() (driver.Value, error) {
	if r == nil {
		r = RawPayload{}
	}
	return json.Marshal(r)
}

func (r *RawPayload) Scan(src any) error {
	if src == nil {
		*r = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return errors.New("raw payload: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, r)
}

// Report is one district's MGNREGA statistics for one financial year. The
// (state, district, year) triple is the upsert key: re-syncing the same key
// overwrites in place, never duplicates.
type Report struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	State    string    `json:"state" gorm:"index:idx_reports_key,unique"`
	District string    `json:"district" gorm:"index:idx_reports_key,unique;index"`
	Year     int       `json:"year" gorm:"index:idx_reports_key,unique"`

	// FinancialYear is the display form, e.g. "2024-25".
	FinancialYear string `json:"financial_year"`

	TotalJobcards            int     `json:"total_jobcards"`
	TotalWorkers             int     `json:"total_workers"`
	TotalHouseholdsWorked    int     `json:"total_households_worked"`
	TotalPersondaysGenerated int     `json:"total_persondays_generated"`
	TotalWorkCompleted       int     `json:"total_work_completed"`
	AverageWageRate          float64 `json:"average_wage_rate"`
	TotalExpenditureRs       float64 `json:"total_expenditure_rs"`

	Metrics MetricList `json:"metrics" gorm:"type:jsonb"`
	Raw     RawPayload `json:"raw" gorm:"type:jsonb"`

	// Generated marks synthetic fallback data so real and generated records
	// stay distinguishable by query, not just inside the raw blob.
	Generated bool `json:"generated" gorm:"index"`

	// SourceUpdatedAt is when the upstream value was last observed, distinct
	// from the row's own UpdatedAt.
	SourceUpdatedAt time.Time `json:"source_updated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string { return "mgnrega.reports" }

// SyncRun records the outcome of one sync pass for operator visibility.
type SyncRun struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Trigger         string         `json:"trigger"` // "manual" or "scheduled"
	Provider        string         `json:"provider"`
	Status          string         `json:"status"` // "ok" or "failed"
	Total           int            `json:"total"`
	Success         int            `json:"success"`
	Skipped         int            `json:"skipped"`
	Errors          int            `json:"errors"`
	DurationSeconds float64        `json:"duration_seconds"`
	ErrorSamples    pq.StringArray `json:"error_samples" gorm:"type:text[]"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
}

func (SyncRun) TableName() string { return "mgnrega.sync_runs" }

// FinancialYearString formats a starting calendar year in the government's
// "YYYY-YY" convention, e.g. 2024 -> "2024-25".
func FinancialYearString(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
