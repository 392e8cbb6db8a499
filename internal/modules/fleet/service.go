// README: Driver service — CRUD with validation.
package fleet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetsim/internal/types"
)

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name     string
	Location types.Point
	SpeedKmh float64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Driver, error) {
	if cmd.Name == "" {
		return nil, ErrBadRequest
	}
	d := &Driver{
		ID:        types.ID(uuid.NewString()),
		Name:      cmd.Name,
		Status:    StatusAvailable,
		Location:  cmd.Location,
		SpeedKmh:  cmd.SpeedKmh,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id types.ID, status Status) error {
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *Service) SetLocation(ctx context.Context, id types.ID, p types.Point) error {
	return s.store.UpdateLocation(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}
