// README: Driver aggregate and status definitions.
package fleet

import (
	"time"

	"fleetsim/internal/types"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusOffline   Status = "offline"
)

type Driver struct {
	ID        types.ID
	Name      string
	Status    Status
	Location  types.Point
	SpeedKmh  float64
	CreatedAt time.Time
}
