// README: Simulation engine — single-writer driver registry, tick loop, and leg state machine.
package simulation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"fleetsim/internal/config"
	"fleetsim/internal/geo"
	"fleetsim/internal/modules/delivery"
	"fleetsim/internal/routing"
	"fleetsim/internal/types"
)

var (
	ErrNotRunning     = errors.New("driver is not simulating")
	ErrAlreadyRunning = errors.New("driver is already simulating")
	ErrNoPendingLegs  = errors.New("driver has no pending legs")
)

// RoutePlanner performs one weather-aware route selection.
type RoutePlanner interface {
	SelectRoute(ctx context.Context, waypoints []types.Point) (routing.Selection, error)
}

// OrderSource supplies a driver's open orders and records leg completion.
type OrderSource interface {
	ListOpenByDriver(ctx context.Context, driverID types.ID) ([]delivery.Order, error)
	MarkPickedUp(ctx context.Context, id types.ID) error
	MarkDelivered(ctx context.Context, id types.ID) error
}

// Telemetry receives live position snapshots. May be nil.
type Telemetry interface {
	Publish(ctx context.Context, st DriverState) error
	Remove(ctx context.Context, driverID types.ID) error
}

// Engine owns every simulated driver's runtime state behind one mutex —
// the registry is the single writer, so per-driver state never needs its
// own locking. Route selection is the only operation that leaves the lock:
// it runs in a goroutine tagged with a per-driver sequence number, and the
// tick loop keeps interpolating along the old route until the newest
// response lands.
type Engine struct {
	mu      sync.Mutex
	drivers map[types.ID]*driverRuntime
	nextGen uint64

	planner   RoutePlanner
	orders    OrderSource
	telemetry Telemetry
	cfg       config.SimulationConfig
}

func NewEngine(planner RoutePlanner, orders OrderSource, telemetry Telemetry, cfg config.SimulationConfig) *Engine {
	if cfg.TickMs <= 0 {
		cfg.TickMs = 100
	}
	return &Engine{
		drivers:   make(map[types.ID]*driverRuntime),
		planner:   planner,
		orders:    orders,
		telemetry: telemetry,
		cfg:       cfg,
	}
}

// Run drives the interpolator for all active drivers until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(e.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick(ctx, float64(e.cfg.TickMs))
		}
	}
}

// Start begins simulating a driver from origin. The driver's open orders
// are expanded into legs (pickup before dropoff, oldest order first) and a
// route to the first target is requested; the driver starts moving when
// the route arrives.
func (e *Engine) Start(ctx context.Context, driverID types.ID, origin types.Point, speedKmh float64) error {
	orders, err := e.orders.ListOpenByDriver(ctx, driverID)
	if err != nil {
		return err
	}
	legs := buildLegs(orders)
	if len(legs) == 0 {
		return ErrNoPendingLegs
	}
	if speedKmh <= 0 {
		speedKmh = e.cfg.DefaultSpeedKmh
	}

	e.mu.Lock()
	if rt, ok := e.drivers[driverID]; ok && rt.Status != StatusIdle {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.nextGen++
	rt := &driverRuntime{
		DriverState: DriverState{
			DriverID: driverID,
			Status:   statusForLeg(legs[0].Kind),
			Position: origin,
			SpeedKmh: speedKmh,
		},
		legs: legs,
		gen:  e.nextGen,
	}
	e.drivers[driverID] = rt
	target := legs[0].Target
	e.mu.Unlock()

	e.requestRoute(ctx, driverID, origin, target)
	return nil
}

// Stop removes the driver from the simulation.
func (e *Engine) Stop(ctx context.Context, driverID types.ID) error {
	e.mu.Lock()
	_, ok := e.drivers[driverID]
	delete(e.drivers, driverID)
	e.mu.Unlock()
	if !ok {
		return ErrNotRunning
	}
	if e.telemetry != nil {
		if err := e.telemetry.Remove(ctx, driverID); err != nil {
			log.Printf("[simulation] telemetry remove %s: %v", driverID, err)
		}
	}
	return nil
}

// State returns a copy of the driver's runtime state.
func (e *Engine) State(driverID types.ID) (DriverState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rt, ok := e.drivers[driverID]
	if !ok {
		return DriverState{}, false
	}
	return snapshot(rt), true
}

// OnHazardChanged re-issues route selection for every en-route driver from
// its current simulated position to its current target. Leg index and order
// statuses are untouched; only the route and cursor are replaced when the
// new selection lands.
func (e *Engine) OnHazardChanged(ctx context.Context) {
	type reroute struct {
		id   types.ID
		from types.Point
		to   types.Point
	}

	e.mu.Lock()
	var reroutes []reroute
	for id, rt := range e.drivers {
		if !rt.Status.EnRoute() || rt.LegIndex >= len(rt.legs) {
			continue
		}
		reroutes = append(reroutes, reroute{id: id, from: rt.Position, to: rt.legs[rt.LegIndex].Target})
	}
	e.mu.Unlock()

	for _, r := range reroutes {
		e.requestRoute(ctx, r.id, r.from, r.to)
	}
}

// Tick advances every moving driver by dtMs milliseconds. Drivers that
// reach the end of their route stop moving and transition in the
// background; the next tick resumes movement on the new leg's route.
func (e *Engine) Tick(ctx context.Context, dtMs float64) {
	type arrival struct {
		id types.ID
	}

	e.mu.Lock()
	var arrivals []arrival
	var published []DriverState
	for id, rt := range e.drivers {
		if !rt.Moving || rt.Cursor >= len(rt.Route) {
			continue
		}

		target := rt.Route[rt.Cursor]
		next, snapped := geo.StepToward(rt.Position, target, rt.SpeedKmh, dtMs)
		if next != rt.Position {
			rt.Heading = geo.BearingDeg(rt.Position, next)
		}
		rt.Position = next
		if snapped {
			rt.Cursor++
			if rt.Cursor >= len(rt.Route) {
				rt.Moving = false
				rt.Status = arrivalStatusForLeg(rt.legs[rt.LegIndex].Kind)
				arrivals = append(arrivals, arrival{id: id})
			}
		}
		published = append(published, snapshot(rt))
	}
	e.mu.Unlock()

	if e.telemetry != nil {
		for _, st := range published {
			if err := e.telemetry.Publish(ctx, st); err != nil {
				log.Printf("[simulation] telemetry publish %s: %v", st.DriverID, err)
			}
		}
	}
	for _, a := range arrivals {
		go e.handleArrival(ctx, a.id)
	}
}

// handleArrival marks the completed leg's order status and moves the driver
// onto the next leg, or parks it idle when none remain. A persistence
// failure is logged; the simulation itself keeps going.
func (e *Engine) handleArrival(ctx context.Context, driverID types.ID) {
	e.mu.Lock()
	rt, ok := e.drivers[driverID]
	if !ok || rt.LegIndex >= len(rt.legs) {
		e.mu.Unlock()
		return
	}
	leg := rt.legs[rt.LegIndex]
	gen := rt.gen
	e.mu.Unlock()

	var err error
	switch leg.Kind {
	case LegPickup:
		err = e.orders.MarkPickedUp(ctx, leg.OrderID)
	case LegDropoff:
		err = e.orders.MarkDelivered(ctx, leg.OrderID)
	}
	if err != nil {
		log.Printf("[simulation] mark %s for order %s: %v", leg.Kind, leg.OrderID, err)
	}

	e.mu.Lock()
	rt, ok = e.drivers[driverID]
	if !ok || rt.gen != gen {
		// The run this arrival belonged to was stopped (and possibly
		// restarted) while the order mark was in flight.
		e.mu.Unlock()
		return
	}
	rt.LegIndex++
	if rt.LegIndex >= len(rt.legs) {
		rt.Status = StatusIdle
		rt.Moving = false
		rt.Route = nil
		rt.Cursor = 0
		rt.RoutePending = false
		e.mu.Unlock()
		return
	}
	next := rt.legs[rt.LegIndex]
	rt.Status = statusForLeg(next.Kind)
	from := rt.Position
	e.mu.Unlock()

	e.requestRoute(ctx, driverID, from, next.Target)
}

// requestRoute launches one route selection for the driver. The sequence
// number taken under the lock identifies the newest request; any response
// carrying an older sequence is dropped on arrival, which keeps reroutes
// ordered without transport-level cancellation.
func (e *Engine) requestRoute(ctx context.Context, driverID types.ID, from, to types.Point) {
	e.mu.Lock()
	rt, ok := e.drivers[driverID]
	if !ok {
		e.mu.Unlock()
		return
	}
	rt.routeSeq++
	rt.RoutePending = true
	seq := rt.routeSeq
	gen := rt.gen
	e.mu.Unlock()

	// Selection outlives the request that triggered it (a hazard toggle, a
	// start call); only its values are kept.
	ctx = context.WithoutCancel(ctx)

	go func() {
		sel, err := e.planner.SelectRoute(ctx, []types.Point{from, to})

		e.mu.Lock()
		defer e.mu.Unlock()
		rt, ok := e.drivers[driverID]
		if !ok || rt.gen != gen {
			return
		}
		if seq != rt.routeSeq {
			log.Printf("[simulation] driver %s: dropping stale route (seq %d < %d)", driverID, seq, rt.routeSeq)
			return
		}
		rt.RoutePending = false
		if !rt.Status.EnRoute() {
			// The driver arrived (or was parked) while the selection was in
			// flight; the route no longer targets any leg.
			log.Printf("[simulation] driver %s: dropping route for a finished leg", driverID)
			return
		}
		if err != nil {
			// Keep the last valid route; the driver never freezes by
			// losing its position or leg.
			log.Printf("[simulation] driver %s: route selection failed: %v", driverID, err)
			return
		}
		rt.Route = sel.Geometry
		rt.Cursor = 0
		rt.Moving = true
	}()
}

func buildLegs(orders []delivery.Order) []Leg {
	var legs []Leg
	for _, o := range orders {
		if o.Status == delivery.StatusPending {
			legs = append(legs, Leg{OrderID: o.ID, Kind: LegPickup, Target: o.Pickup})
		}
		legs = append(legs, Leg{OrderID: o.ID, Kind: LegDropoff, Target: o.Dropoff})
	}
	return legs
}

func snapshot(rt *driverRuntime) DriverState {
	st := rt.DriverState
	st.Route = append([]types.Point(nil), rt.Route...)
	return st
}
