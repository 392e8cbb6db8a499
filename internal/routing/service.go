// README: Routing service — weather-aware route selection entry point.
package routing

import (
	"context"
	"errors"
	"log"

	"fleetsim/internal/modules/weather"
	"fleetsim/internal/types"
)

var ErrTooFewWaypoints = errors.New("route selection needs at least two waypoints")

// ZoneSource supplies the active hazard snapshot for one selection pass.
type ZoneSource interface {
	ListActive(ctx context.Context) ([]weather.Zone, error)
}

// Service owns one full selection pass: snapshot zones, fan out strategies,
// score candidates, pick a winner. Every failure degrades; the demo never
// stops for a routing error.
type Service struct {
	provider  Provider
	zones     ZoneSource
	generator *Generator
}

func NewService(provider Provider, zones ZoneSource) *Service {
	return &Service{
		provider:  provider,
		zones:     zones,
		generator: NewGenerator(provider),
	}
}

// SelectRoute picks the best route between the given waypoints. With no
// active hazards a single direct query is used as-is (fast path). Otherwise
// every strategy candidate is scored against the zone snapshot and the
// lowest-penalty candidate wins, raw duration breaking ties.
func (s *Service) SelectRoute(ctx context.Context, waypoints []types.Point) (Selection, error) {
	if len(waypoints) < 2 {
		return Selection{}, ErrTooFewWaypoints
	}

	zones, err := s.zones.ListActive(ctx)
	if err != nil {
		log.Printf("[routing] zone snapshot failed, scoring without hazards: %v", err)
		zones = nil
	}

	if len(zones) == 0 {
		return s.directOrFallback(ctx, waypoints)
	}

	candidates := s.generator.Generate(ctx, waypoints, zones)
	for i := range candidates {
		Score(&candidates[i], zones)
	}

	best, ok := SelectBest(candidates)
	if !ok {
		// Every strategy failed; one last unscored direct attempt.
		return s.directOrFallback(ctx, waypoints)
	}

	return Selection{
		Strategy:       best.Strategy,
		Geometry:       best.Geometry,
		DistanceMeters: best.DistanceMeters,
		DurationMillis: best.DurationMillis,
		Penalty:        best.Penalty,
		Degraded:       best.Degraded,
	}, nil
}

func (s *Service) directOrFallback(ctx context.Context, waypoints []types.Point) (Selection, error) {
	direct, err := s.provider.Query(ctx, waypoints, QueryOptions{})
	if err != nil || len(direct) == 0 {
		log.Printf("[routing] direct query failed, returning degenerate route: %v", err)
		return Selection{
			Strategy: StrategyDirect,
			Geometry: append([]types.Point(nil), waypoints...),
			Fallback: true,
		}, nil
	}
	c := direct[0]
	return Selection{
		Strategy:       StrategyDirect,
		Geometry:       c.Geometry,
		DistanceMeters: c.DistanceMeters,
		DurationMillis: c.DurationMillis,
		Degraded:       c.Degraded,
	}, nil
}
