package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/DistrictPulse/DP-Backend/internal/db"
	"github.com/DistrictPulse/DP-Backend/internal/mgnrega"
)

var startedAt = time.Now()

// RootHandler is a plain-text liveness probe for load balancers.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HealthCheck reports process and database liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		status = "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        status,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptimeSeconds": time.Since(startedAt).Seconds(),
	})
}

// TriggerSync runs a sync pass on demand. A pass already in flight is
// rejected with 409 rather than queued; pass-level failures surface with a
// configuration hint for the operator.
func TriggerSync(w http.ResponseWriter, r *http.Request) {
	if mgnrega.Sync == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": "Sync unavailable",
			"hint":  "No upstream provider configured - check MGNREGA_PROVIDER and DATA_GOV_API_URL in .env",
		})
		return
	}

	log.Println("Manual sync triggered")

	outcome, err := mgnrega.Sync.SyncAll(r.Context(), "manual")
	if err != nil {
		if errors.Is(err, mgnrega.ErrSyncInProgress) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"ok":      false,
				"error":   "Sync already running",
				"message": err.Error(),
			})
			return
		}

		log.Printf("Manual sync error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"error":   "Sync failed",
			"message": err.Error(),
			"hint":    "Check DATA_GOV_API_URL and DATA_GOV_API_KEY in .env",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Sync completed",
		"result":  outcome,
	})
}

// ListSyncRuns returns recent sync pass outcomes, newest first.
func ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := mgnrega.Store.RecentSyncRuns(r.Context(), 20)
	if err != nil {
		log.Printf("Sync run listing error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "error": "could not list sync runs",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"runs": runs,
	})
}
