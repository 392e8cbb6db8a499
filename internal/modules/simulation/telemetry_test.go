package simulation

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fleetsim/internal/types"
)

func newTestTelemetry(t *testing.T) *TelemetryStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewTelemetryStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestTelemetry_PublishAndState(t *testing.T) {
	store := newTestTelemetry(t)
	ctx := context.Background()

	published := DriverState{
		DriverID: "d1",
		Status:   StatusEnRoutePickup,
		Position: types.Point{Lat: 18.52, Lng: 73.86},
		Heading:  90,
		SpeedKmh: 40,
		Moving:   true,
		LegIndex: 1,
	}
	if err := store.Publish(ctx, published); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	got, ok, err := store.State(ctx, "d1")
	if err != nil {
		t.Fatalf("State() error: %v", err)
	}
	if !ok {
		t.Fatal("State() found nothing after publish")
	}
	if got.Status != published.Status || got.Position != published.Position || got.LegIndex != 1 {
		t.Errorf("snapshot = %+v, want %+v", got, published)
	}
}

func TestTelemetry_StateMissingDriver(t *testing.T) {
	store := newTestTelemetry(t)

	_, ok, err := store.State(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("State() error: %v", err)
	}
	if ok {
		t.Error("State() reported a snapshot for an unknown driver")
	}
}

func TestTelemetry_Nearby(t *testing.T) {
	store := newTestTelemetry(t)
	ctx := context.Background()

	center := types.Point{Lat: 18.52, Lng: 73.86}
	near := DriverState{DriverID: "near", Position: types.Point{Lat: 18.521, Lng: 73.861}}
	far := DriverState{DriverID: "far", Position: types.Point{Lat: 19.5, Lng: 74.9}}
	for _, st := range []DriverState{near, far} {
		if err := store.Publish(ctx, st); err != nil {
			t.Fatalf("Publish(%s) error: %v", st.DriverID, err)
		}
	}

	ids, err := store.Nearby(ctx, center, 5)
	if err != nil {
		t.Fatalf("Nearby() error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "near" {
		t.Errorf("Nearby() = %v, want [near]", ids)
	}
}

func TestTelemetry_Remove(t *testing.T) {
	store := newTestTelemetry(t)
	ctx := context.Background()

	st := DriverState{DriverID: "d1", Position: types.Point{Lat: 18.52, Lng: 73.86}}
	if err := store.Publish(ctx, st); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if err := store.Remove(ctx, "d1"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	if _, ok, _ := store.State(ctx, "d1"); ok {
		t.Error("snapshot survived Remove")
	}
	ids, err := store.Nearby(ctx, st.Position, 5)
	if err != nil {
		t.Fatalf("Nearby() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Nearby() = %v after Remove, want empty", ids)
	}
}
