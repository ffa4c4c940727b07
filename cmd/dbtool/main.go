package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"vrp-route-viewer/internal/adapters/locations"
	"vrp-route-viewer/internal/adapters/repositories"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool creates the locations table and seeds it from LOCATIONS_FILE or
// the built-in table.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	locs, err := seedLocations(os.Getenv("LOCATIONS_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := initAndSeed(ctx, conn, locs); err != nil {
		log.Fatal(err)
	}
}

func seedLocations(path string) ([]domain.Location, error) {
	if path == "" {
		return locations.MustDefault().List(), nil
	}

	reg, err := locations.LoadYAMLFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed locations: %w", err)
	}
	return reg.List(), nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, locs []domain.Location) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database locations=%d...", len(locs))
	if err := repositories.SeedLocations(ctx, conn, locs); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
