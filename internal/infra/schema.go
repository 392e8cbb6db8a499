// README: Schema initialization for local runs (idempotent CREATE TABLE IF NOT EXISTS).
package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS drivers (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		status       TEXT NOT NULL,
		lat          DOUBLE PRECISION NOT NULL,
		lng          DOUBLE PRECISION NOT NULL,
		speed_kmh    DOUBLE PRECISION NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id              TEXT PRIMARY KEY,
		driver_id       TEXT NOT NULL,
		pickup_label    TEXT NOT NULL,
		dropoff_label   TEXT NOT NULL,
		pickup_lat      DOUBLE PRECISION NOT NULL,
		pickup_lng      DOUBLE PRECISION NOT NULL,
		dropoff_lat     DOUBLE PRECISION NOT NULL,
		dropoff_lng     DOUBLE PRECISION NOT NULL,
		status          TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		picked_up_at    TIMESTAMPTZ,
		delivered_at    TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_driver ON deliveries (driver_id, status)`,
	`CREATE TABLE IF NOT EXISTS weather_zones (
		id          TEXT PRIMARY KEY,
		class       TEXT NOT NULL,
		center_lat  DOUBLE PRECISION NOT NULL,
		center_lng  DOUBLE PRECISION NOT NULL,
		radius_km   DOUBLE PRECISION NOT NULL,
		active      BOOLEAN NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
}

func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
