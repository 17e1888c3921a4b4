package mgnrega

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"github.com/DistrictPulse/DP-Backend/internal/mgnrega/provider"
)

// ErrSyncInProgress is returned when SyncAll is called while another pass is
// still running. A periodic scheduler and the manual trigger endpoint can
// race; the loser is rejected instead of interleaving writes.
var ErrSyncInProgress = errors.New("a sync pass is already in progress")

// MalformedResponseError means the records array could not be located in the
// upstream payload. It carries the top-level keys that were present to make
// the misconfiguration diagnosable from logs alone.
type MalformedResponseError struct {
	Keys []string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("cannot find records array in upstream response (top-level keys: %v) - check DATA_GOV_API_URL", e.Keys)
}

// recordContainers are the field names government payloads have been seen to
// wrap their record arrays in, probed in order.
var recordContainers = []string{"records", "data", "results", "rows"}

// Outcome is the tally of one sync pass. An all-skipped or all-error pass is
// a valid outcome, not a failure.
type Outcome struct {
	Total           int     `json:"total"`
	Success         int     `json:"success"`
	Skipped         int     `json:"skipped"`
	Errors          int     `json:"errors"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Syncer drives full synchronization passes: fetch, normalize, upsert, tally.
type Syncer struct {
	provider provider.ReportProvider
	store    ReportStore

	// pageLimit is the provider's full-page size; a short page ends pagination.
	pageLimit int
	batchSize int
	pause     time.Duration

	running atomic.Bool
}

func NewSyncer(p provider.ReportProvider, store ReportStore) *Syncer {
	return &Syncer{
		provider:  p,
		store:     store,
		pageLimit: 1000,
		batchSize: 50,
		pause:     100 * time.Millisecond,
	}
}

// SyncAll runs one complete sync pass and returns its tally. Only fetch- and
// parse-level problems fail the pass; per-record failures are absorbed into
// the tally. Exactly one pass runs at a time.
func (s *Syncer) SyncAll(ctx context.Context, trigger string) (Outcome, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Outcome{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	log.Printf("[sync] starting %s pass via %s", trigger, s.provider.Name())
	start := time.Now()

	records, err := s.fetchAllRecords(ctx)
	if err != nil {
		s.recordRun(ctx, trigger, start, Outcome{}, err)
		if errors.Is(err, provider.ErrRateLimited) {
			log.Printf("[sync] rate limited by upstream, will retry on next scheduled run")
		} else {
			log.Printf("[sync] pass failed: %v", err)
		}
		return Outcome{}, err
	}

	log.Printf("[sync] found %d records to process", len(records))

	outcome := Outcome{Total: len(records)}
	var errorSamples []string

	for i := 0; i < len(records); i += s.batchSize {
		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		for _, raw := range records[i:end] {
			rec, ok := raw.(map[string]any)
			if !ok {
				outcome.Errors++
				errorSamples = appendSample(errorSamples, fmt.Sprintf("record is not an object: %T", raw))
				continue
			}

			normalized := NormalizeRecord(rec)
			if normalized.District == UnknownDistrict {
				outcome.Skipped++
				continue
			}

			changed, err := s.store.UpsertReport(ctx, normalized)
			if err != nil {
				outcome.Errors++
				errorSamples = appendSample(errorSamples, fmt.Sprintf("%s: %v", describeRecord(normalized), err))
				provider.LogError(s.provider.Name(), "upsert "+describeRecord(normalized), err)
				continue
			}
			if changed {
				outcome.Success++
			}
		}

		// Short pause between batches to bound load on the store.
		if end < len(records) {
			select {
			case <-ctx.Done():
				outcome.DurationSeconds = time.Since(start).Seconds()
				s.recordRun(ctx, trigger, start, outcome, ctx.Err())
				return outcome, ctx.Err()
			case <-time.After(s.pause):
			}
		}
	}

	outcome.DurationSeconds = time.Since(start).Seconds()
	log.Printf("[sync] pass complete in %.2fs: success=%d skipped=%d errors=%d",
		outcome.DurationSeconds, outcome.Success, outcome.Skipped, outcome.Errors)

	s.recordRunWithSamples(ctx, trigger, start, outcome, nil, errorSamples)
	return outcome, nil
}

// fetchAllRecords paginates through the provider until a short page, locating
// the records array inside each payload.
func (s *Syncer) fetchAllRecords(ctx context.Context) ([]any, error) {
	var all []any
	for page := 1; ; page++ {
		payload, err := s.provider.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		records, err := extractRecords(payload)
		if err != nil {
			return nil, err
		}

		all = append(all, records...)

		if len(records) < s.pageLimit {
			return all, nil
		}
	}
}

// extractRecords locates the record list inside an untyped upstream payload:
// a known container field, or the payload itself when it is already an array.
func extractRecords(payload any) ([]any, error) {
	if arr, ok := payload.([]any); ok {
		return arr, nil
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &MalformedResponseError{}
	}

	for _, key := range recordContainers {
		if arr, ok := obj[key].([]any); ok {
			return arr, nil
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return nil, &MalformedResponseError{Keys: keys}
}

// maxErrorSamples bounds how many per-record error messages a SyncRun keeps.
const maxErrorSamples = 10

func appendSample(samples []string, msg string) []string {
	if len(samples) >= maxErrorSamples {
		return samples
	}
	return append(samples, msg)
}

func (s *Syncer) recordRun(ctx context.Context, trigger string, start time.Time, outcome Outcome, passErr error) {
	s.recordRunWithSamples(ctx, trigger, start, outcome, passErr, nil)
}

func (s *Syncer) recordRunWithSamples(ctx context.Context, trigger string, start time.Time, outcome Outcome, passErr error, samples []string) {
	run := &SyncRun{
		Trigger:         trigger,
		Provider:        s.provider.Name(),
		Status:          "ok",
		Total:           outcome.Total,
		Success:         outcome.Success,
		Skipped:         outcome.Skipped,
		Errors:          outcome.Errors,
		DurationSeconds: time.Since(start).Seconds(),
		ErrorSamples:    samples,
		StartedAt:       start,
		FinishedAt:      time.Now(),
	}
	if passErr != nil {
		run.Status = "failed"
		run.ErrorSamples = appendSample(run.ErrorSamples, passErr.Error())
	}

	// The run record must survive the pass's own cancellation.
	if err := s.store.RecordSyncRun(context.WithoutCancel(ctx), run); err != nil {
		log.Printf("[sync] could not record sync run: %v", err)
	}
}
