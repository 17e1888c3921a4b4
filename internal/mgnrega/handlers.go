package mgnrega

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sortDistricts orders district names for the selector dropdown using
// locale-aware collation, so names like "Hugli" and "Howrah" land where a
// reader expects them.
func sortDistricts(districts []string) {
	c := collate.New(language.English, collate.IgnoreCase)
	c.SortStrings(districts)
}

// GetDistricts lists every district present in the store, for the selector.
func GetDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := Store.DistinctDistricts(r.Context())
	if err != nil {
		log.Printf("[mgnrega] districts list error: %v", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "error": "could not list districts",
		})
		return
	}

	sortDistricts(districts)

	writeJSON(w, map[string]any{
		"ok":        true,
		"districts": districts,
		"total":     len(districts),
	})
}

// GetDistrictData returns the stored reports for one district, newest year
// first, optionally filtered by a ?year= query.
func GetDistrictData(w http.ResponseWriter, r *http.Request) {
	district := chi.URLParam(r, "district")

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeJSONStatus(w, http.StatusBadRequest, map[string]any{
				"ok": false, "message": "year must be a number",
			})
			return
		}
		year = parsed
	}

	reports, err := Store.ReportsByDistrict(r.Context(), district, year)
	if err != nil {
		log.Printf("[mgnrega] district query error: %v", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "error": "district query failed",
		})
		return
	}

	if len(reports) == 0 {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{
			"ok":         false,
			"message":    "No data found for district: " + district,
			"suggestion": "Try checking district list or trigger a data sync",
		})
		return
	}

	writeJSON(w, map[string]any{
		"ok":    true,
		"data":  reports,
		"count": len(reports),
	})
}

// GetStats returns the aggregate summary shown on the dashboard header.
func GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := Store.Stats(r.Context())
	if err != nil {
		log.Printf("[mgnrega] stats error: %v", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "error": "stats query failed",
		})
		return
	}

	writeJSON(w, map[string]any{
		"ok":    true,
		"stats": stats,
	})
}

type addDistrictRequest struct {
	District     string `json:"district"`
	State        string `json:"state"`
	DetectedFrom string `json:"detectedFrom"`
}

// AddDistrict provisions a district the upstream source does not cover yet by
// synthesizing three years of fallback data for it. Idempotent: an existing
// district is reported back, not duplicated.
func AddDistrict(w http.ResponseWriter, r *http.Request) {
	var req addDistrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, map[string]any{
			"ok": false, "message": "invalid request body",
		})
		return
	}

	req.District = strings.TrimSpace(req.District)
	req.State = strings.TrimSpace(req.State)
	if req.District == "" || req.State == "" {
		writeJSONStatus(w, http.StatusBadRequest, map[string]any{
			"ok": false, "message": "District and state are required",
		})
		return
	}

	log.Printf("[mgnrega] new district request: %s, %s (detected from: %s)",
		req.District, req.State, req.DetectedFrom)

	exists, existingName, err := Store.DistrictExists(r.Context(), req.State, req.District)
	if err != nil {
		log.Printf("[mgnrega] add-district lookup error: %v", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "message": "district lookup failed",
		})
		return
	}
	if exists {
		writeJSON(w, map[string]any{
			"ok":            true,
			"message":       "District already exists",
			"alreadyExists": true,
			"district":      existingName,
		})
		return
	}

	reports := GenerateDistrictReports(req.State, req.District, req.DetectedFrom)
	if err := Store.InsertReports(r.Context(), reports); err != nil {
		log.Printf("[mgnrega] add-district insert error: %v", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "message": "could not add district",
		})
		return
	}

	log.Printf("[mgnrega] added %d records for %s, %s", len(reports), req.District, req.State)

	writeJSON(w, map[string]any{
		"ok":           true,
		"message":      "District " + req.District + " added successfully",
		"recordsAdded": len(reports),
		"district":     req.District,
		"data":         reports,
	})
}
