// README: Weather penalty scorer — hazard exposure cost for one candidate.
package routing

import (
	"math"

	"fleetsim/internal/geo"
	"fleetsim/internal/modules/weather"
	"fleetsim/internal/types"
)

// Demo heuristic constants. The arithmetic is preserved exactly for
// compatibility with the dashboard's expectations; it is not a validated
// cost model.
const (
	minSamplePoints     = 10
	upsamplePerSegment  = 10
	severityStep        = 0.5
	severityCap         = 10.0
	timePenaltyFactor   = 0.1
	distancePenaltyRate = 0.02
)

func basePenalty(class weather.Class) float64 {
	switch class {
	case weather.ClassStorm:
		return 100
	case weather.ClassTraffic:
		return 50
	case weather.ClassLight:
		return 20
	default:
		return 30
	}
}

// Score computes the hazard penalty for a candidate against a zone snapshot
// and adjusts the candidate's duration and distance in place. A candidate
// that touches no zone is left untouched and reports TotalPenalty = 0.
//
// For a fixed zone configuration the penalty is non-decreasing in the
// number of affected sample points, and scoring the same candidate against
// the same snapshot twice yields identical reports.
func Score(candidate *Candidate, zones []weather.Zone) PenaltyReport {
	samples := sampleGeometry(candidate.Geometry)

	report := PenaltyReport{SampledPoints: len(samples)}

	var totalBase float64
	for _, pt := range samples {
		for _, z := range zones {
			if !z.Active {
				continue
			}
			if z.Contains(geo.HaversineKm(pt, z.Center)) {
				report.AffectedPoints++
				totalBase += basePenalty(z.Class)
			}
		}
	}

	if report.AffectedPoints == 0 {
		candidate.Penalty = &report
		return report
	}

	report.SeverityMultiplier = math.Min(1+float64(report.AffectedPoints)*severityStep, severityCap)
	report.TotalPenalty = totalBase * report.SeverityMultiplier
	report.TimeMultiplier = 1 + report.TotalPenalty*timePenaltyFactor

	candidate.DurationMillis = math.Round(candidate.DurationMillis * report.TimeMultiplier)
	candidate.DistanceMeters = math.Round(candidate.DistanceMeters * (1 + report.TotalPenalty*distancePenaltyRate))
	candidate.Penalty = &report
	return report
}

// sampleGeometry returns the points the scorer tests against zones. Sparse
// provider geometry (< 10 points) is upsampled by linear interpolation so a
// terse provider response gets the same hazard resolution as a verbose one.
func sampleGeometry(points []types.Point) []types.Point {
	if len(points) >= minSamplePoints || len(points) < 2 {
		return points
	}

	samples := make([]types.Point, 0, (len(points)-1)*upsamplePerSegment+1)
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		samples = append(samples, a)
		for j := 1; j < upsamplePerSegment; j++ {
			f := float64(j) / float64(upsamplePerSegment)
			samples = append(samples, types.Point{
				Lat: a.Lat + (b.Lat-a.Lat)*f,
				Lng: a.Lng + (b.Lng-a.Lng)*f,
			})
		}
	}
	return append(samples, points[len(points)-1])
}
