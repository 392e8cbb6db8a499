package geo

import (
	"math"
	"testing"

	"fleetsim/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 18.52, Lng: 73.86},
			b:         types.Point{Lat: 18.52, Lng: 73.86},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Pune station to airport (~8km)",
			a:         types.Point{Lat: 18.5289, Lng: 73.8744},
			b:         types.Point{Lat: 18.5793, Lng: 73.9089},
			wantKm:    6.7,
			tolerance: 1.0,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         types.Point{Lat: 40.7128, Lng: -74.0060},
			b:         types.Point{Lat: 34.0522, Lng: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 25.0, Lng: 121.0}
	b := types.Point{Lat: 26.0, Lng: 122.0}
	d1 := HaversineKm(a, b)
	d2 := HaversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestBearingDeg_Cardinal(t *testing.T) {
	origin := types.Point{Lat: 18.52, Lng: 73.86}
	tests := []struct {
		name      string
		target    types.Point
		want      float64
		tolerance float64
	}{
		{"north", types.Point{Lat: 19.52, Lng: 73.86}, 0, 0.01},
		{"east", types.Point{Lat: 18.52, Lng: 74.86}, 90, 0.5},
		{"south", types.Point{Lat: 17.52, Lng: 73.86}, 180, 0.01},
		{"west", types.Point{Lat: 18.52, Lng: 72.86}, 270, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingDeg(origin, tt.target)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("BearingDeg() = %f, want %f", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("BearingDeg() = %f, outside [0, 360)", got)
			}
		})
	}
}

func TestDestinationPoint_RoundTrip(t *testing.T) {
	origin := types.Point{Lat: 18.52, Lng: 73.86}
	dest := DestinationPoint(origin, 37.0, 12.5)

	if d := HaversineKm(origin, dest); math.Abs(d-12.5) > 0.01 {
		t.Errorf("distance to destination = %f, want 12.5", d)
	}
	if b := BearingDeg(origin, dest); math.Abs(b-37.0) > 0.1 {
		t.Errorf("bearing to destination = %f, want 37.0", b)
	}
}

func TestMidpoint_HalfwayBetween(t *testing.T) {
	a := types.Point{Lat: 18.52, Lng: 73.86}
	b := DestinationPoint(a, 90, 10)
	mid := Midpoint(a, b)

	da := HaversineKm(a, mid)
	db := HaversineKm(mid, b)
	if math.Abs(da-db) > 0.001 {
		t.Errorf("midpoint not equidistant: %f vs %f", da, db)
	}
	if math.Abs(da-5) > 0.01 {
		t.Errorf("midpoint distance = %f, want 5", da)
	}
}

func TestStepToward_SnapsOnArrival(t *testing.T) {
	from := types.Point{Lat: 18.52, Lng: 73.86}
	target := DestinationPoint(from, 90, 0.001) // 1 metre away

	// 50 km/h over 100 ms covers ~1.39 m, more than remains.
	pos, snapped := StepToward(from, target, 50, 100)
	if !snapped {
		t.Fatal("expected snap to target")
	}
	if pos != target {
		t.Errorf("position = %+v, want exactly %+v", pos, target)
	}
}

// A driver at 50 km/h moves ~1.39 m east in one 100 ms tick, heading ~90°.
func TestStepToward_OneTickEast(t *testing.T) {
	from := types.Point{Lat: 18.52, Lng: 73.86}
	target := DestinationPoint(from, 90, 1.0) // 1 km due east

	pos, snapped := StepToward(from, target, 50, 100)
	if snapped {
		t.Fatal("unexpected snap: 1 km remains")
	}

	movedM := HaversineKm(from, pos) * 1000
	if math.Abs(movedM-1.389) > 0.01 {
		t.Errorf("moved %f m, want ~1.389", movedM)
	}
	if heading := BearingDeg(from, pos); math.Abs(heading-90) > 0.5 {
		t.Errorf("heading = %f, want ~90", heading)
	}
	if pos.Lng <= from.Lng {
		t.Errorf("expected eastward movement, lng %f -> %f", from.Lng, pos.Lng)
	}
}

func TestStepToward_ZeroSpeedStaysPut(t *testing.T) {
	from := types.Point{Lat: 18.52, Lng: 73.86}
	target := DestinationPoint(from, 90, 1.0)

	pos, snapped := StepToward(from, target, 0, 100)
	if snapped {
		t.Fatal("unexpected snap at zero speed")
	}
	if HaversineKm(from, pos) > 1e-9 {
		t.Errorf("position moved at zero speed: %+v", pos)
	}
}
