package system

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", RootHandler)
	r.Get("/health", HealthCheck)
	r.Post("/sync", TriggerSync)
	r.Get("/sync/runs", ListSyncRuns)

	return r
}
