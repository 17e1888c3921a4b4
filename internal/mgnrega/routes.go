package mgnrega

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/districts", GetDistricts)
	r.Get("/district/{district}", GetDistrictData)
	r.Get("/stats", GetStats)
	r.Post("/add-district", AddDistrict)

	return r
}
