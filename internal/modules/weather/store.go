// README: Weather zone store backed by PostgreSQL.
package weather

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleetsim/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, z *Zone) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO weather_zones (id, class, center_lat, center_lng, radius_km, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(z.ID), string(z.Class),
		z.Center.Lat, z.Center.Lng,
		z.RadiusKm, z.Active, z.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Zone, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, class, center_lat, center_lng, radius_km, active, created_at
		FROM weather_zones WHERE id = $1`, string(id),
	)
	var z Zone
	err := row.Scan(&z.ID, &z.Class, &z.Center.Lat, &z.Center.Lng, &z.RadiusKm, &z.Active, &z.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (s *Store) List(ctx context.Context) ([]Zone, error) {
	return s.list(ctx, `
		SELECT id, class, center_lat, center_lng, radius_km, active, created_at
		FROM weather_zones ORDER BY created_at`)
}

func (s *Store) ListActive(ctx context.Context) ([]Zone, error) {
	return s.list(ctx, `
		SELECT id, class, center_lat, center_lng, radius_km, active, created_at
		FROM weather_zones WHERE active ORDER BY created_at`)
}

func (s *Store) list(ctx context.Context, query string) ([]Zone, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.Class, &z.Center.Lat, &z.Center.Lng, &z.RadiusKm, &z.Active, &z.CreatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// SetActive flips the active flag and returns the stored zone, or ErrNotFound.
func (s *Store) SetActive(ctx context.Context, id types.ID, active bool) (*Zone, error) {
	tag, err := s.db.Exec(ctx, `UPDATE weather_zones SET active = $2 WHERE id = $1`, string(id), active)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM weather_zones WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
