package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vrp-route-viewer/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		code TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lng DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180)
	);
	`

	statements := []string{
		createLocationsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert the given locations into the locations table.
func SeedLocations(ctx context.Context, db *sql.DB, locs []domain.Location) error {
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	rows := make([]domain.Location, 0, len(locs))
	for i, l := range locs {
		code := domain.NormalizeCode(l.Code)
		if code == "" {
			return fmt.Errorf("seed locations: item at index %d: code cannot be empty", i+1)
		}
		if err := l.Coordinates.Validate(); err != nil {
			return fmt.Errorf("seed locations: item %q: %w", code, err)
		}
		rows = append(rows, domain.Location{Code: code, Coordinates: l.Coordinates})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO locations (code, lat, lng)
	VALUES ($1, $2, $3)
	ON CONFLICT (code) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.ExecContext(ctx, l.Code, l.Coordinates.Lat, l.Coordinates.Lng); err != nil {
			return fmt.Errorf("seed locations: insert code=%q: %w", l.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
