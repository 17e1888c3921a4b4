package mgnrega

import (
	"log"

	"github.com/DistrictPulse/DP-Backend/internal/db"
	"github.com/DistrictPulse/DP-Backend/internal/mgnrega/provider"

	// Import providers to register them via init()
	_ "github.com/DistrictPulse/DP-Backend/internal/mgnrega/datagov"
	_ "github.com/DistrictPulse/DP-Backend/internal/mgnrega/nregaportal"
)

// Package-level wiring, initialized in Init() the same way across features.
var (
	// Provider is the active upstream data source, nil when configuration is
	// unusable (syncing disabled, read API still works).
	Provider provider.ReportProvider

	// Store is the postgres-backed report store.
	Store *GormStore

	// Sync drives synchronization passes against Provider and Store.
	Sync *Syncer
)

func Init() {
	if err := db.EnsureSchema(db.DB, "mgnrega"); err != nil {
		log.Fatal("Failed to ensure schema mgnrega: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(
		&Report{},
		&SyncRun{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	Store = NewStore(db.DB)

	cfg := provider.LoadFromEnv()
	var err error
	Provider, err = provider.NewProvider(cfg)
	if err != nil {
		log.Printf("[mgnrega] WARNING: Failed to initialize %s provider: %v", cfg.Provider, err)
		log.Printf("[mgnrega] Upstream syncing will be disabled")
		Provider = nil
	} else {
		log.Printf("[mgnrega] Initialized %s provider", Provider.Name())
		Sync = NewSyncer(Provider, Store)
	}
}
