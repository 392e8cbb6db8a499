// README: Route candidates, penalty reports, and query options for the routing core.
package routing

import (
	"fleetsim/internal/types"
)

// Strategy tags identify which query variant produced a candidate.
const (
	StrategyDirect       = "direct"
	StrategyAvoid        = "avoid"
	StrategyDetour       = "detour"
	StrategyFastest      = "fastest"
	StrategyShortest     = "shortest"
	StrategyAlternatives = "alternatives"
)

// PenaltyReport is the scorer's verdict on one candidate. It is derived
// data: attached during selection, surfaced to the caller, never persisted.
type PenaltyReport struct {
	TotalPenalty       float64 `json:"totalPenalty"`
	AffectedPoints     int     `json:"affectedPoints"`
	SampledPoints      int     `json:"sampledPoints"`
	SeverityMultiplier float64 `json:"severityMultiplier"`
	TimeMultiplier     float64 `json:"timeMultiplier"`
}

// Candidate is one strategy-tagged route proposal under consideration.
// Geometry is always lat/lng ordered regardless of provider format.
// RawDurationMillis keeps the pre-penalty duration for tie-breaking.
type Candidate struct {
	Strategy          string
	Geometry          []types.Point
	DistanceMeters    float64
	DurationMillis    float64
	RawDurationMillis float64
	Degraded          bool
	Penalty           *PenaltyReport
}

// QueryOptions carries strategy-specific parameters to the provider.
type QueryOptions struct {
	// Preference selects the provider's optimization objective
	// ("fastest" or "shortest"; empty means provider default).
	Preference string
	// AvoidPolygons are exclusion areas, outer ring per polygon, lat/lng ordered.
	AvoidPolygons [][]types.Point
	// Alternatives asks the provider for up to n distinct paths (0 = single).
	Alternatives int
}

// Selection is the winning route surfaced to callers.
type Selection struct {
	Strategy       string         `json:"strategy"`
	Geometry       []types.Point  `json:"geometry"`
	DistanceMeters float64        `json:"distanceMeters"`
	DurationMillis float64        `json:"durationMillis"`
	Penalty        *PenaltyReport `json:"penalty,omitempty"`
	Degraded       bool           `json:"degraded,omitempty"`
	Fallback       bool           `json:"fallback,omitempty"`
}
