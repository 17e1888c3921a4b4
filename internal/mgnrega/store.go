package mgnrega

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportStore is the write surface the sync orchestrator and fallback
// generator need. Kept small so tests can stand in a mock.
type ReportStore interface {
	// UpsertReport writes r keyed by (state, district, year). It reports
	// whether the row was actually created or modified: a byte-identical
	// re-sync is a no-op and returns false.
	UpsertReport(ctx context.Context, r *Report) (bool, error)

	// RecordSyncRun persists the outcome of one sync pass.
	RecordSyncRun(ctx context.Context, run *SyncRun) error
}

// reportColumns are the mutable columns an upsert refreshes.
var reportColumns = []string{
	"financial_year",
	"total_jobcards", "total_workers", "total_households_worked",
	"total_persondays_generated", "total_work_completed",
	"average_wage_rate", "total_expenditure_rs",
	"metrics", "raw", "generated",
	"source_updated_at", "updated_at",
}

// noopGuard makes the DO UPDATE conditional on the data actually changing, so
// RowsAffected distinguishes a real write from an identical re-sync.
// SourceUpdatedAt is deliberately excluded: it moves on every normalization
// and would defeat no-op detection.
const noopGuard = `
	reports.raw IS DISTINCT FROM excluded.raw
	OR reports.metrics IS DISTINCT FROM excluded.metrics
	OR reports.total_jobcards IS DISTINCT FROM excluded.total_jobcards
	OR reports.total_workers IS DISTINCT FROM excluded.total_workers
	OR reports.total_households_worked IS DISTINCT FROM excluded.total_households_worked
	OR reports.total_persondays_generated IS DISTINCT FROM excluded.total_persondays_generated
	OR reports.total_work_completed IS DISTINCT FROM excluded.total_work_completed
	OR reports.average_wage_rate IS DISTINCT FROM excluded.average_wage_rate
	OR reports.total_expenditure_rs IS DISTINCT FROM excluded.total_expenditure_rs
	OR reports.generated IS DISTINCT FROM excluded.generated`

// GormStore is the postgres-backed ReportStore.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertReport(ctx context.Context, r *Report) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "state"}, {Name: "district"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns(reportColumns),
		Where: clause.Where{
			Exprs: []clause.Expression{clause.Expr{SQL: noopGuard}},
		},
	}).Create(r)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) RecordSyncRun(ctx context.Context, run *SyncRun) error {
	return s.db.WithContext(ctx).Create(run).Error
}

// DistinctDistricts returns every district name present in the store,
// excluding normalizer placeholders. Sorting is left to the caller.
func (s *GormStore) DistinctDistricts(ctx context.Context) ([]string, error) {
	var districts []string
	err := s.db.WithContext(ctx).
		Model(&Report{}).
		Distinct("district").
		Where("district NOT IN ?", []string{UnknownDistrict, "Unknown"}).
		Pluck("district", &districts).Error
	return districts, err
}

// ReportsByDistrict returns reports for a district, case-insensitively,
// optionally filtered by year, newest first. Limited to a UI-sized page.
func (s *GormStore) ReportsByDistrict(ctx context.Context, district string, year int) ([]Report, error) {
	q := s.db.WithContext(ctx).
		Where("LOWER(district) = LOWER(?)", district)
	if year > 0 {
		q = q.Where("year = ?", year)
	}

	var reports []Report
	err := q.Order("year DESC").Order("updated_at DESC").Limit(10).Find(&reports).Error
	return reports, err
}

// DistrictExists reports whether any record exists for the district in the
// given state, matching names case-insensitively.
func (s *GormStore) DistrictExists(ctx context.Context, state, district string) (bool, string, error) {
	var existing Report
	err := s.db.WithContext(ctx).
		Where("LOWER(district) = LOWER(?) AND LOWER(state) = LOWER(?)", district, state).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	return true, existing.District, nil
}

// StoreStats is the aggregate summary the dashboard shows.
type StoreStats struct {
	TotalReports   int64      `json:"totalReports"`
	TotalDistricts int64      `json:"totalDistricts"`
	TotalStates    int64      `json:"totalStates"`
	GeneratedShare int64      `json:"generatedReports"`
	LastSync       *time.Time `json:"lastSync"`
}

func (s *GormStore) Stats(ctx context.Context) (StoreStats, error) {
	var stats StoreStats
	db := s.db.WithContext(ctx).Model(&Report{})

	if err := db.Count(&stats.TotalReports).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Report{}).Distinct("district").Count(&stats.TotalDistricts).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Report{}).Distinct("state").Count(&stats.TotalStates).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&Report{}).Where("generated").Count(&stats.GeneratedShare).Error; err != nil {
		return stats, err
	}

	var latest Report
	err := s.db.WithContext(ctx).Order("source_updated_at DESC").Select("source_updated_at").First(&latest).Error
	if err == nil {
		stats.LastSync = &latest.SourceUpdatedAt
	} else if err != gorm.ErrRecordNotFound {
		return stats, err
	}

	return stats, nil
}

// RecentSyncRuns returns the latest sync passes, newest first.
func (s *GormStore) RecentSyncRuns(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []SyncRun
	err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// InsertReports creates a batch of new reports (add-district path).
func (s *GormStore) InsertReports(ctx context.Context, reports []*Report) error {
	return s.db.WithContext(ctx).Create(reports).Error
}
