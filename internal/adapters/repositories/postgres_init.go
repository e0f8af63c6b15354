package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Requires the PostGIS extension for the
// corridor search and line projection.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createExtensionQuery := `
	CREATE EXTENSION IF NOT EXISTS postgis;
	`

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stations (
		id BIGSERIAL PRIMARY KEY,
		opis_id INTEGER NOT NULL UNIQUE,
		truckstop_name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		rack_id INTEGER,
		retail_price NUMERIC(6,4) NOT NULL,
		location GEOGRAPHY(Point, 4326),
		geocoded_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	createUploadsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_price_uploads (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		total_records INTEGER NOT NULL DEFAULT 0,
		inserted_records INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		processed_at TIMESTAMPTZ
	);
	`

	createIndexQueries := []string{
		`CREATE INDEX IF NOT EXISTS idx_fuel_stations_location ON fuel_stations USING GIST (location);`,
		`CREATE INDEX IF NOT EXISTS idx_fuel_stations_retail_price ON fuel_stations (retail_price);`,
		`CREATE INDEX IF NOT EXISTS idx_fuel_stations_state_price ON fuel_stations (state, retail_price);`,
		`CREATE INDEX IF NOT EXISTS idx_fuel_price_uploads_status ON fuel_price_uploads (status);`,
	}

	statements := append(
		[]string{createExtensionQuery, createStationsQuery, createUploadsQuery},
		createIndexQueries...,
	)

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
