// README: Driver runtime state, legs, and progress statuses for the simulation.
package simulation

import (
	"fleetsim/internal/types"
)

type Status string

const (
	StatusIdle           Status = "idle"
	StatusEnRoutePickup  Status = "en_route_pickup"
	StatusAtPickup       Status = "at_pickup"
	StatusEnRouteDropoff Status = "en_route_dropoff"
	StatusAtDropoff      Status = "at_dropoff"
)

// EnRoute reports whether a driver in this status is travelling toward a
// target (and therefore subject to disruption reroutes).
func (s Status) EnRoute() bool {
	return s == StatusEnRoutePickup || s == StatusEnRouteDropoff
}

type LegKind string

const (
	LegPickup  LegKind = "pickup"
	LegDropoff LegKind = "dropoff"
)

// Leg is one directed travel target. A delivery order contributes a pickup
// leg followed by a dropoff leg; legs are consumed strictly in order.
type Leg struct {
	OrderID types.ID    `json:"orderId"`
	Kind    LegKind     `json:"kind"`
	Target  types.Point `json:"target"`
}

// DriverState is the externally visible snapshot of one simulated driver.
// Exactly one live instance exists per driver; only the engine mutates it.
// RoutePending reports a route selection still in flight; the driver keeps
// following its last route until the response lands.
type DriverState struct {
	DriverID     types.ID      `json:"driverId"`
	Status       Status        `json:"status"`
	Position     types.Point   `json:"position"`
	Heading      float64       `json:"heading"`
	SpeedKmh     float64       `json:"speedKmh"`
	Moving       bool          `json:"moving"`
	LegIndex     int           `json:"legIndex"`
	Route        []types.Point `json:"route"`
	Cursor       int           `json:"cursor"`
	RoutePending bool          `json:"routePending"`
}

// driverRuntime is the engine-private state. routeSeq is the latest issued
// route request; a response is applied only if it still carries that
// sequence, so a reroute superseded mid-flight is discarded, never applied.
// gen identifies one Start..Stop run; async work tagged with an older gen
// finds a different run on relock and must not touch it.
type driverRuntime struct {
	DriverState
	legs     []Leg
	gen      uint64
	routeSeq uint64
}

func statusForLeg(kind LegKind) Status {
	if kind == LegDropoff {
		return StatusEnRouteDropoff
	}
	return StatusEnRoutePickup
}

func arrivalStatusForLeg(kind LegKind) Status {
	if kind == LegDropoff {
		return StatusAtDropoff
	}
	return StatusAtPickup
}
