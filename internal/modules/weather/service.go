// README: Weather zone service — CRUD plus active-set snapshots for scoring.
package weather

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetsim/internal/types"
)

var (
	ErrNotFound   = errors.New("weather zone not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Class    Class
	Center   types.Point
	RadiusKm float64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Zone, error) {
	if !ValidClass(cmd.Class) || cmd.RadiusKm <= 0 {
		return nil, ErrBadRequest
	}
	z := &Zone{
		ID:        types.ID(uuid.NewString()),
		Class:     cmd.Class,
		Center:    cmd.Center,
		RadiusKm:  cmd.RadiusKm,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Zone, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Zone, error) {
	return s.store.List(ctx)
}

// ListActive returns the active zones as a fresh slice. Callers treat the
// result as an immutable snapshot for the duration of one scoring pass, so
// a zone toggled mid-selection never changes state between candidates.
func (s *Service) ListActive(ctx context.Context) ([]Zone, error) {
	zones, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]Zone, len(zones))
	copy(snapshot, zones)
	return snapshot, nil
}

// Toggle flips the active flag and returns the updated zone.
func (s *Service) Toggle(ctx context.Context, id types.ID) (*Zone, error) {
	z, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.SetActive(ctx, id, !z.Active)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}
