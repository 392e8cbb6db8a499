// Package geo contains pure spherical-earth computation helpers.
//
// All functions use the haversine approximation with R = 6371 km; no
// projection is performed. Latitudes and longitudes are decimal degrees.
package geo

import (
	"math"

	"fleetsim/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two points.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// BearingDeg returns the initial great-circle bearing from a to b in degrees [0, 360).
func BearingDeg(a, b types.Point) float64 {
	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) - math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLng)

	deg := radiansToDegrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// DestinationPoint returns the point reached by travelling distKm from p along
// the given initial bearing. Spherical formula, so it stays accurate at high
// latitudes where a linear lat/lng blend would distort.
func DestinationPoint(p types.Point, bearingDeg, distKm float64) types.Point {
	rLat := degreesToRadians(p.Lat)
	rLng := degreesToRadians(p.Lng)
	rBearing := degreesToRadians(bearingDeg)
	angular := distKm / earthRadiusKm

	lat2 := math.Asin(math.Sin(rLat)*math.Cos(angular) +
		math.Cos(rLat)*math.Sin(angular)*math.Cos(rBearing))
	lng2 := rLng + math.Atan2(
		math.Sin(rBearing)*math.Sin(angular)*math.Cos(rLat),
		math.Cos(angular)-math.Sin(rLat)*math.Sin(lat2),
	)

	return types.Point{Lat: radiansToDegrees(lat2), Lng: radiansToDegrees(lng2)}
}

// Midpoint returns the great-circle midpoint between two points.
func Midpoint(a, b types.Point) types.Point {
	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)
	rLng1 := degreesToRadians(a.Lng)
	dLng := degreesToRadians(b.Lng - a.Lng)

	bx := math.Cos(rLat2) * math.Cos(dLng)
	by := math.Cos(rLat2) * math.Sin(dLng)

	lat := math.Atan2(math.Sin(rLat1)+math.Sin(rLat2),
		math.Sqrt((math.Cos(rLat1)+bx)*(math.Cos(rLat1)+bx)+by*by))
	lng := rLng1 + math.Atan2(by, math.Cos(rLat1)+bx)

	return types.Point{Lat: radiansToDegrees(lat), Lng: radiansToDegrees(lng)}
}

// StepToward advances from toward target at speedKmh for tickMs milliseconds.
// If the step covers the remaining distance the position snaps exactly onto
// the target (no overshoot) and snapped is true.
func StepToward(from, target types.Point, speedKmh, tickMs float64) (pos types.Point, snapped bool) {
	remainingKm := HaversineKm(from, target)
	stepKm := speedKmh / 3600.0 * (tickMs / 1000.0)

	if stepKm >= remainingKm {
		return target, true
	}
	return DestinationPoint(from, BearingDeg(from, target), stepKm), false
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
