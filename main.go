package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/DistrictPulse/DP-Backend/internal/db"
	"github.com/DistrictPulse/DP-Backend/internal/mgnrega"
	"github.com/DistrictPulse/DP-Backend/internal/middleware"
	"github.com/DistrictPulse/DP-Backend/internal/system"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	mgnrega.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Mount("/mgnrega", mgnrega.SetupRoutes())
	r.Mount("/", system.SetupRoutes())

	startAutoSync()

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}

// startAutoSync runs periodic sync passes in the background. Disabled with
// ENABLE_AUTO_SYNC=false; the interval comes from SYNC_INTERVAL (default 24h).
func startAutoSync() {
	if os.Getenv("ENABLE_AUTO_SYNC") == "false" {
		log.Println("Auto-sync disabled (set ENABLE_AUTO_SYNC=true to enable)")
		return
	}
	if mgnrega.Sync == nil {
		log.Println("Auto-sync disabled: no upstream provider configured")
		return
	}

	interval := 24 * time.Hour
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("Invalid SYNC_INTERVAL %q, using default 24h", v)
		} else {
			interval = parsed
		}
	}

	log.Printf("Auto-sync scheduled every %s", interval)

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for range t.C {
			log.Println("Running scheduled data sync...")
			outcome, err := mgnrega.Sync.SyncAll(context.Background(), "scheduled")
			if err != nil {
				log.Printf("Scheduled sync failed: %v", err)
				continue
			}
			log.Printf("Scheduled sync successful: %+v", outcome)
		}
	}()
}
