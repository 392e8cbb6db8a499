// README: Delivery order service — state transitions and persistence.
package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetsim/internal/types"
)

var (
	ErrNotFound     = errors.New("delivery order not found")
	ErrInvalidState = errors.New("invalid status transition")
	ErrConflict     = errors.New("delivery status conflict")
	ErrBadRequest   = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	DriverID     types.ID
	PickupLabel  string
	DropoffLabel string
	Pickup       types.Point
	Dropoff      types.Point
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if cmd.DriverID == "" {
		return nil, ErrBadRequest
	}
	o := &Order{
		ID:           types.ID(uuid.NewString()),
		DriverID:     cmd.DriverID,
		PickupLabel:  cmd.PickupLabel,
		DropoffLabel: cmd.DropoffLabel,
		Pickup:       cmd.Pickup,
		Dropoff:      cmd.Dropoff,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

func (s *Service) ListOpenByDriver(ctx context.Context, driverID types.ID) ([]Order, error) {
	return s.store.ListOpenByDriver(ctx, driverID)
}

func (s *Service) MarkPickedUp(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, StatusPending, StatusPickedUp)
}

func (s *Service) MarkDelivered(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, StatusPickedUp, StatusDelivered)
}

func (s *Service) transition(ctx context.Context, id types.ID, from, to Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, from, to, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		// Row missing or already past the expected status.
		if _, err := s.store.Get(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}
