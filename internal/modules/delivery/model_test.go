package delivery

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to picked up", StatusPending, StatusPickedUp, true},
		{"picked up to delivered", StatusPickedUp, StatusDelivered, true},
		{"pending cannot skip to delivered", StatusPending, StatusDelivered, false},
		{"delivered is terminal", StatusDelivered, StatusPending, false},
		{"no backwards transition", StatusPickedUp, StatusPending, false},
		{"no self transition", StatusPending, StatusPending, false},
		{"unknown status", Status("cancelled"), StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
