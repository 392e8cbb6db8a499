package weather

import "testing"

func TestValidClass(t *testing.T) {
	for _, c := range []Class{ClassStorm, ClassTraffic, ClassLight, ClassOther} {
		if !ValidClass(c) {
			t.Errorf("ValidClass(%s) = false", c)
		}
	}
	if ValidClass("hurricane") {
		t.Error("ValidClass accepted an unknown class")
	}
}

func TestZoneContains(t *testing.T) {
	z := Zone{RadiusKm: 2}
	tests := []struct {
		distKm float64
		want   bool
	}{
		{0, true},
		{1.99, true},
		{2, true}, // boundary is inside
		{2.01, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.distKm); got != tt.want {
			t.Errorf("Contains(%f) = %v, want %v", tt.distKm, got, tt.want)
		}
	}
}
