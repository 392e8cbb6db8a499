// README: Delivery order store backed by PostgreSQL.
package delivery

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

const orderColumns = `id, driver_id, pickup_label, dropoff_label,
	pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	status, created_at, picked_up_at, delivered_at`

func (s *Store) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO deliveries (
			id, driver_id, pickup_label, dropoff_label,
			pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(o.ID), string(o.DriverID),
		o.PickupLabel, o.DropoffLabel,
		o.Pickup.Lat, o.Pickup.Lng,
		o.Dropoff.Lat, o.Dropoff.Lng,
		string(o.Status), o.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM deliveries WHERE id = $1`, string(id))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOpenByDriver returns the driver's undelivered orders, oldest first —
// the order in which the simulation consumes their legs.
func (s *Store) ListOpenByDriver(ctx context.Context, driverID types.ID) ([]Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+orderColumns+` FROM deliveries
		WHERE driver_id = $1 AND status <> $2
		ORDER BY created_at`, string(driverID), string(StatusDelivered))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM deliveries ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateStatus applies a guarded transition; it only succeeds while the row
// is still in the expected from-status, so concurrent writers cannot skip
// or repeat a step.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, at time.Time) (bool, error) {
	column := ""
	switch to {
	case StatusPickedUp:
		column = "picked_up_at"
	case StatusDelivered:
		column = "delivered_at"
	default:
		return false, ErrInvalidState
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE deliveries SET status = $3, `+column+` = $4
		WHERE id = $1 AND status = $2`,
		string(id), string(from), string(to), at,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var pickedUpAt, deliveredAt sql.NullTime
	err := row.Scan(
		&o.ID, &o.DriverID, &o.PickupLabel, &o.DropoffLabel,
		&o.Pickup.Lat, &o.Pickup.Lng, &o.Dropoff.Lat, &o.Dropoff.Lng,
		&o.Status, &o.CreatedAt, &pickedUpAt, &deliveredAt,
	)
	if err != nil {
		return nil, err
	}
	if pickedUpAt.Valid {
		o.PickedUpAt = &pickedUpAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return &o, nil
}
