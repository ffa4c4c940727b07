package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/obs"
)

// Postgres-backed implementation of the LocationRepository port.
type PostgresLocationRepository struct{ DB *sql.DB }

func NewPostgresLocationRepository(db *sql.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db}
}

// Return all locations stored in the database, ordered by code.
func (p *PostgresLocationRepository) ListLocations(ctx context.Context) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "locations.repo.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres location repository: DB is nil")
	}

	query := `
	SELECT
		code,
		lat,
		lng
	FROM locations
	ORDER BY code;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locs := make([]domain.Location, 0, 16)
	for rows.Next() {
		var code string
		var lat, lng float64
		if err := rows.Scan(&code, &lat, &lng); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locs = append(locs, domain.Location{
			Code:        code,
			Coordinates: domain.Coordinates{Lat: lat, Lng: lng},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locs, nil
}
