// README: Delivery order aggregate and status transition table.
package delivery

import (
	"time"

	"fleetsim/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPickedUp  Status = "picked_up"
	StatusDelivered Status = "delivered"
)

// Order is one pickup-then-dropoff job assigned to a driver. It contributes
// exactly two simulation legs, pickup strictly before dropoff.
type Order struct {
	ID           types.ID
	DriverID     types.ID
	PickupLabel  string
	DropoffLabel string
	Pickup       types.Point
	Dropoff      types.Point
	Status       Status
	CreatedAt    time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
}

// AllowedTransitions represents the order status flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusPickedUp},
	StatusPickedUp: {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
