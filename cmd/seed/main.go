package main

import (
	"context"
	"log"

	"github.com/DistrictPulse/DP-Backend/internal/db"
	"github.com/DistrictPulse/DP-Backend/internal/mgnrega"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()
	mgnrega.Init()

	catalog := mgnrega.ActiveCatalog()
	log.Printf("Seeding %d states / %d districts", len(catalog), catalog.Districts())

	count, err := mgnrega.SeedDatabase(context.Background(), mgnrega.Store, catalog)
	if err != nil {
		log.Fatalf("Seeding failed after %d records: %v", count, err)
	}
}
