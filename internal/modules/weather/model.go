// README: Weather zone aggregate — operator-placed circular hazard regions.
package weather

import (
	"time"

	"fleetsim/internal/types"
)

type Class string

const (
	ClassStorm   Class = "storm"
	ClassTraffic Class = "traffic"
	ClassLight   Class = "light"
	ClassOther   Class = "other"
)

// ValidClass reports whether c is one of the known hazard classes.
// Unknown classes are still scored (as ClassOther) but rejected at creation.
func ValidClass(c Class) bool {
	switch c {
	case ClassStorm, ClassTraffic, ClassLight, ClassOther:
		return true
	}
	return false
}

// Zone is a circular hazard region. Scoring only ever sees zones with
// Active set; everything else about a zone is immutable after creation.
type Zone struct {
	ID        types.ID
	Class     Class
	Center    types.Point
	RadiusKm  float64
	Active    bool
	CreatedAt time.Time
}

// Contains reports whether the given haversine distance from the zone
// center falls inside the zone.
func (z Zone) Contains(distanceKm float64) bool {
	return distanceKm <= z.RadiusKm
}
