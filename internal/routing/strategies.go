// README: Strategy generator — issues differently-configured provider queries per request.
package routing

import (
	"context"
	"log"
	"math"

	"fleetsim/internal/geo"
	"fleetsim/internal/modules/weather"
	"fleetsim/internal/types"
)

const (
	// maxAlternatives caps how many provider-proposed paths become candidates.
	maxAlternatives = 3
	// detourProximityFactor: a zone earns a detour waypoint when the trip
	// midpoint lies within this multiple of its radius.
	detourProximityFactor = 2.0
	// detourOffsetFactor: how far beside the zone the synthetic waypoint sits,
	// as a multiple of its radius.
	detourOffsetFactor = 2.0
)

// Generator fans one routing request out into several provider queries and
// collects every returned path as a strategy-tagged candidate. Individual
// strategy failures are logged and skipped; an empty result means all of
// them failed.
type Generator struct {
	provider Provider
}

func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

func (g *Generator) Generate(ctx context.Context, waypoints []types.Point, zones []weather.Zone) []Candidate {
	var candidates []Candidate

	collect := func(strategy string, cs []Candidate, err error, limit int) {
		if err != nil {
			log.Printf("[routing] strategy %s failed: %v", strategy, err)
			return
		}
		if limit > 0 && len(cs) > limit {
			cs = cs[:limit]
		}
		for i := range cs {
			cs[i].Strategy = strategy
		}
		candidates = append(candidates, cs...)
	}

	direct, err := g.provider.Query(ctx, waypoints, QueryOptions{})
	collect(StrategyDirect, direct, err, 1)

	avoid, err := g.provider.Query(ctx, waypoints, QueryOptions{AvoidPolygons: avoidancePolygons(zones)})
	collect(StrategyAvoid, avoid, err, 1)

	if len(waypoints) == 2 {
		if detoured := detourWaypoints(waypoints[0], waypoints[1], zones); len(detoured) > 0 {
			via := make([]types.Point, 0, len(detoured)+2)
			via = append(via, waypoints[0])
			via = append(via, detoured...)
			via = append(via, waypoints[1])
			ds, err := g.provider.Query(ctx, via, QueryOptions{})
			collect(StrategyDetour, ds, err, 1)
		}
	}

	fastest, err := g.provider.Query(ctx, waypoints, QueryOptions{Preference: "fastest"})
	collect(StrategyFastest, fastest, err, 1)

	shortest, err := g.provider.Query(ctx, waypoints, QueryOptions{Preference: "shortest"})
	collect(StrategyShortest, shortest, err, 1)

	alts, err := g.provider.Query(ctx, waypoints, QueryOptions{Alternatives: maxAlternatives})
	collect(StrategyAlternatives, alts, err, maxAlternatives)

	return candidates
}

// avoidancePolygons builds one square exclusion polygon per active zone,
// corners at the diagonal bearings so the square circumscribes the circle.
func avoidancePolygons(zones []weather.Zone) [][]types.Point {
	var polygons [][]types.Point
	for _, z := range zones {
		if !z.Active {
			continue
		}
		half := z.RadiusKm * math.Sqrt2
		ring := []types.Point{
			geo.DestinationPoint(z.Center, 45, half),
			geo.DestinationPoint(z.Center, 135, half),
			geo.DestinationPoint(z.Center, 225, half),
			geo.DestinationPoint(z.Center, 315, half),
		}
		polygons = append(polygons, ring)
	}
	return polygons
}

// detourWaypoints returns one synthetic waypoint per zone the direct path
// plausibly crosses, placed perpendicular to the start→end bearing on
// whichever side yields the shorter combined detour.
func detourWaypoints(start, end types.Point, zones []weather.Zone) []types.Point {
	mid := geo.Midpoint(start, end)
	bearing := geo.BearingDeg(start, end)

	var waypoints []types.Point
	for _, z := range zones {
		if !z.Active {
			continue
		}
		if geo.HaversineKm(mid, z.Center) > detourProximityFactor*z.RadiusKm {
			continue
		}

		offset := detourOffsetFactor * z.RadiusKm
		left := geo.DestinationPoint(z.Center, math.Mod(bearing+270, 360), offset)
		right := geo.DestinationPoint(z.Center, math.Mod(bearing+90, 360), offset)

		leftDist := geo.HaversineKm(start, left) + geo.HaversineKm(left, end)
		rightDist := geo.HaversineKm(start, right) + geo.HaversineKm(right, end)
		if leftDist <= rightDist {
			waypoints = append(waypoints, left)
		} else {
			waypoints = append(waypoints, right)
		}
	}
	return waypoints
}
